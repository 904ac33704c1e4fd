// Package dataset loads the flat-file city dataset for the cityreports CLI.
//
// Each line of the input describes one city with four pipe-delimited fields:
//
//	population|name|state|interstate1;interstate2;...
//
// The loader turns those lines into model.City records, assigning each record
// an immutable CityID in load order. Two policies exist for malformed lines:
// strict (the default, the first bad line aborts the load) and skip, where the
// line is dropped and reported through a callback.
package dataset

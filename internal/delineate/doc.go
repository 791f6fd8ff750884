// Package delineate runs coastline and cliff extraction over one elevation
// grid.
//
// What:
//
//   - Run owns the grid, the coasts it finds, the logger and the random
//     source used to break ties, for the lifetime of one extraction.
//   - Execute fills the sea, traces and smooths the coastlines, estimates
//     their curvature, builds and untangles the normal profiles, stamps
//     them onto the grid and classifies each profile as cliff or beach.
//
// Errors:
//
//   - raster.ErrEmptyGrid, raster.ErrBadCellSize, raster.ErrSingularTransform
//     from New when the elevation source is unusable.
//   - coast.ErrTraceTooLong when a coastline trace runs away.
//   - profile.ErrInconsistentMultiLine when the shared-segment ledger breaks.
//
// Every other problem (a short coastline, a profile with no end point)
// only drops the object concerned and is logged at debug level.
package delineate

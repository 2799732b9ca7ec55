// Package kmeans implements Lloyd's k-means clustering over 2D points.
//
// The pipeline is:
//
//	rows → Normalize → InitFromPoints → Engine.Converge
//
// Converge repeats reassign → snapshot → iterate → compare until two
// consecutive centroid states match, or until the iteration ceiling is hit.
// A state matches its predecessor when the centroid fingerprints are equal
// (Tolerance == 0) or when every centroid kept its color and moved no more
// than Tolerance (Tolerance > 0).
package kmeans

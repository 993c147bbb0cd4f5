// Package artwork names, counts, and downloads the image files written beside
// media: poster.jpg, fanart.jpg, and cover.jpg.
package artwork

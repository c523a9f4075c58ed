package model

import "contentapi/internal/jsmodule"

// Document identifies one remote data file: where it lives in the website
// repository, the export name its literal is assigned to, and where its
// binary assets are committed.
type Document struct {
	// Path is the repository-relative location of the data file.
	Path string
	// ExportName is the identifier in `export const <name> = ...;`.
	ExportName string
	// Kind is the literal shape the file body holds.
	Kind jsmodule.Kind
	// AssetDir is the repository directory new asset blobs are committed to.
	AssetDir string
	// AssetPrefix, when set, prefixes generated asset file names.
	AssetPrefix string
}

// The three live content documents. Paths and export names must match what
// the deployed site imports; notofications.js is misspelled in production
// and stays that way.
var (
	AnnouncementDocument = Document{
		Path:        "src/data/popupData.js",
		ExportName:  "popupData",
		Kind:        jsmodule.KindObject,
		AssetDir:    "public/assets",
		AssetPrefix: "popup",
	}

	NewsDocument = Document{
		Path:       "src/data/news.js",
		ExportName: "news",
		Kind:       jsmodule.KindArray,
		AssetDir:   "public/images",
	}

	NotificationsDocument = Document{
		Path:        "src/data/notofications.js",
		ExportName:  "notifications",
		Kind:        jsmodule.KindArray,
		AssetDir:    "public/pdfs",
		AssetPrefix: "notif",
	}
)

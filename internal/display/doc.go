// Package display renders exchange run results for people and for files.
//
// # Tree view
//
// RenderTree groups entries by course and direction:
//
//	exchange
//	└── phys101
//	    ├── inbound
//	    │   └── alice hw1 20230101T120000
//	    └── outbound
//	        └── hw1
//
// # Export
//
// WriteEntries writes entries as JSON or YAML, chosen by file extension,
// using a locked atomic write so concurrent readers never see partial output.
//
// # Warnings
//
// Warning prints a highlighted multi-line notice, used when a remove run
// stops part way through and some directories are already gone.
package display

// Package admin holds the state and behavior of the catalog admin screens:
// controlled form records, the image picker, read-only tables, the delete
// confirmation modal, the create/edit pages and the preset editor.
//
// Nothing here renders markup. The HTML handlers and the pcforge-admin CLI
// both drive these types and present the resulting views.
package admin

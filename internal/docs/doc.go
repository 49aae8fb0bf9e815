// Package docs renders parsed markdown into Google Docs documents and
// reads document content back out.
//
// The write path is a small compiler pipeline:
//
//	blocks := markdown.NewParser().Parse(source)
//	ops, end, err := docs.NewCompiler().Compile(blocks)
//	reqs := docs.EncodeRequests(ops)
//
// The Compiler walks blocks front to back with a cursor that starts at
// the first editable body index and advances by the UTF-16 length of
// every inserted string. Each block contributes its insert followed by
// the style operations covering it; adjacent list items and code lines
// form runs closed by a single trailing operation. Because styles only
// ever reference already-inserted ranges, the operation stream can be
// cut into batches at any point.
//
// The Dispatcher does exactly that: it slices operations into bounded
// batches and submits them strictly in order through a BatchUpdater.
// There is no retry and no rollback; a failed batch surfaces as a
// *TransportError naming which batch died, and everything before it is
// already in the document.
//
// Client wraps the Docs API service with the workflows built from those
// parts: CreateDocument (create, move to folder, compile, dispatch),
// ReadDocument, ClearDocument and InsertImageTop. The read direction,
// DocumentToMarkdown and DocumentToPlainText, converts live documents
// back to text.
//
// Tables deserve a note: inserting an R-by-C table advances the cursor
// by 2+R*(2C+1) indexes (one automatic leading newline plus the table
// element), and cell text is inserted bottom-right first so every cell
// index can be computed against the empty table layout regardless of
// where batch boundaries fall.
//
// Example usage:
//
//	client, err := docs.NewClientForAccount(ctx, "work")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	created, err := client.CreateDocumentFromMarkdown(ctx, "Weekly Report", source, &docs.CreateOptions{
//	    FolderID: folder.ID,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(created.URL)
package docs

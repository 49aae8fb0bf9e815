package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/docpush/gdocs/internal/docs"
	"github.com/docpush/gdocs/internal/drive"
	"github.com/docpush/gdocs/internal/markdown"
)

// watchDebounce is how long a file has to stay quiet before it is
// re-uploaded. Editors fire several filesystem events per save.
const watchDebounce = 500 * time.Millisecond

func newUploadCmd() *cobra.Command {
	var (
		account      string
		title        string
		folder       string
		prefix       string
		shareWith    string
		shareRole    string
		watch        bool
		batchSize    int
		strictStatus bool
	)

	cmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload markdown files as Google Docs",
		Long: `Upload markdown files into a Google Drive folder, rendering each one
as a native Google Doc with styled headings, lists, tables and code.

The folder is created if it does not exist. Files whose document title
already exists in the folder are skipped. The document title comes from
the frontmatter 'title' field when present, otherwise it is derived
from the file name ("03_project_plan.md" becomes "project plan").

With --watch the command keeps running and re-renders a document
whenever its source file changes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title != "" && len(args) != 1 {
				return fmt.Errorf("--title requires exactly one file, got %d", len(args))
			}

			ctx := context.Background()
			if watch {
				var stop context.CancelFunc
				ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
			}

			driveClient, err := drive.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Drive client for account %s: %w", account, err)
			}
			docsClient, err := docs.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Docs client for account %s: %w", account, err)
			}

			folderInfo, err := driveClient.EnsureFolder(ctx, folder, "")
			if err != nil {
				return fmt.Errorf("failed to create folder %s: %w", folder, err)
			}
			fmt.Printf("Folder: %s\n", drive.FolderURL(folderInfo.ID))

			inFolder, _, err := driveClient.ListFiles(ctx, &drive.ListOptions{
				FolderID:   folderInfo.ID,
				MaxResults: 1000,
			})
			if err != nil {
				return fmt.Errorf("failed to list folder contents: %w", err)
			}
			docIDs := make(map[string]string, len(inFolder))
			for _, f := range inFolder {
				docIDs[f.Name] = f.ID
			}

			up := &uploader{
				docsClient: docsClient,
				folderID:   folderInfo.ID,
				title:      title,
				prefix:     prefix,
				batchSize:  batchSize,
				strict:     strictStatus,
				docIDs:     docIDs,
			}

			for _, path := range args {
				if err := up.publish(ctx, path); err != nil {
					return err
				}
			}

			if shareWith != "" {
				if _, err := driveClient.ShareFile(ctx, folderInfo.ID, &drive.ShareOptions{
					Type:                  "user",
					Role:                  shareRole,
					EmailAddress:          shareWith,
					SendNotificationEmail: true,
				}); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: could not share with %s: %v\n", shareWith, err)
				} else {
					fmt.Printf("Shared with %s (%s)\n", shareWith, shareRole)
				}
			}

			if watch {
				return watchFiles(ctx, up, args)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVar(&title, "title", "", "Document title (single file only, overrides frontmatter)")
	cmd.Flags().StringVar(&folder, "folder", "Uploads", "Drive folder name to publish into")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Title prefix for docs")
	cmd.Flags().StringVar(&shareWith, "share", "", "Email to share the folder with")
	cmd.Flags().StringVar(&shareRole, "role", "writer", "Role for --share (reader or writer)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and re-upload files when they change")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Requests per batchUpdate call (default 35)")
	cmd.Flags().BoolVar(&strictStatus, "strict-status", false, "Reject unknown status labels instead of highlighting them neutrally")

	return cmd
}

// uploader publishes markdown files into one Drive folder. docIDs maps
// document titles already in the folder to their IDs so repeated uploads
// update in place instead of creating duplicates.
type uploader struct {
	docsClient *docs.Client
	folderID   string
	title      string
	prefix     string
	batchSize  int
	strict     bool
	docIDs     map[string]string
}

func (u *uploader) createOptions() *docs.CreateOptions {
	return &docs.CreateOptions{
		FolderID:     u.folderID,
		BatchSize:    u.batchSize,
		StrictStatus: u.strict,
	}
}

// load reads a markdown file and resolves its document title. An explicit
// --title wins, then a frontmatter title, then one derived from the file
// name. The prefix applies to whichever source the title came from.
func (u *uploader) load(path string) (string, []byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	meta, body, err := markdown.SplitFrontmatter(source)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	title := u.title
	if title == "" {
		title = meta.Title
	}
	if title == "" {
		title = titleFromFilename(path)
	}
	if u.prefix != "" {
		title = u.prefix + " - " + title
	}
	return title, body, nil
}

// publish uploads path as a new document, skipping titles that already
// exist in the folder.
func (u *uploader) publish(ctx context.Context, path string) error {
	title, body, err := u.load(path)
	if err != nil {
		return err
	}

	if _, ok := u.docIDs[title]; ok {
		fmt.Printf("SKIP (exists): %s\n", title)
		return nil
	}
	return u.create(ctx, path, title, body)
}

// refresh re-renders path into its existing document, or creates the
// document when its title is not in the folder yet.
func (u *uploader) refresh(ctx context.Context, path string) error {
	title, body, err := u.load(path)
	if err != nil {
		return err
	}

	id, ok := u.docIDs[title]
	if !ok {
		return u.create(ctx, path, title, body)
	}

	if _, err := u.docsClient.ReplaceDocumentFromMarkdown(ctx, id, string(body), u.createOptions()); err != nil {
		return fmt.Errorf("failed to update %s: %w", title, err)
	}
	fmt.Printf("Updated: %s -> %s\n", title, docs.DocumentURL(id))
	return nil
}

func (u *uploader) create(ctx context.Context, path, title string, body []byte) error {
	created, err := u.docsClient.CreateDocumentFromMarkdown(ctx, title, string(body), u.createOptions())
	if err != nil {
		if created != nil {
			// The document exists but not all batches were applied. Track
			// it anyway so a later refresh updates it in place.
			u.docIDs[title] = created.ID
		}
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	u.docIDs[title] = created.ID
	fmt.Printf("Created: %s -> %s\n", title, created.URL)
	return nil
}

// watchFiles blocks until ctx is cancelled, re-uploading files as they
// change. Events are debounced per file, and uploads run one at a time
// from this goroutine.
func watchFiles(ctx context.Context, up *uploader, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directories rather than the files themselves:
	// editors that save via rename-and-replace would otherwise detach
	// the watch on the first write.
	watched := make(map[string]string, len(paths))
	watchedDirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		watched[abs] = path
		dir := filepath.Dir(abs)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			watchedDirs[dir] = true
		}
	}

	fmt.Printf("Watching %d file(s) for changes, Ctrl-C to stop\n", len(paths))

	changed := make(chan string, len(paths))
	timers := make(map[string]*time.Timer)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			path, ok := watched[abs]
			if !ok {
				continue
			}
			if t, ok := timers[abs]; ok {
				t.Stop()
			}
			timers[abs] = time.AfterFunc(watchDebounce, func() {
				select {
				case changed <- path:
				case <-ctx.Done():
				}
			})
		case path := <-changed:
			if err := up.refresh(ctx, path); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: watch error: %v\n", err)
		}
	}
}

var leadingDigits = regexp.MustCompile(`^\d+\s+`)

// titleFromFilename derives a document title from a markdown file name.
// The extension is dropped, underscores become spaces, and a leading
// ordering number ("03 ") is stripped.
func titleFromFilename(path string) string {
	title := filepath.Base(path)
	title = strings.TrimSuffix(title, filepath.Ext(title))
	title = strings.ReplaceAll(title, "_", " ")
	return leadingDigits.ReplaceAllString(title, "")
}

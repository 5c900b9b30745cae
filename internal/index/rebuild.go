package index

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jepemo/mystuff/internal/journal"
	"github.com/jepemo/mystuff/internal/lists"
	"github.com/jepemo/mystuff/internal/meetings"
	"github.com/jepemo/mystuff/internal/wiki"
)

// document is one row queued for indexing.
type document struct {
	store   string
	path    string
	title   string
	content string
}

// indexLock holds the exclusive rebuild lock file.
type indexLock struct {
	file *os.File
}

func acquireIndexLock(dbDir string) (*indexLock, error) {
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dbDir, err)
	}

	lockFile, err := os.OpenFile(filepath.Join(dbDir, "index.lock"), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open index lock: %w", err)
	}

	if err := tryLockExclusive(lockFile); err != nil {
		lockFile.Close()
		if lockIsBusy(err) {
			return nil, ErrIndexLocked
		}
		return nil, fmt.Errorf("failed to acquire index lock: %w", err)
	}

	return &indexLock{file: lockFile}, nil
}

func (l *indexLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := releaseLock(l.file)
	closeErr := l.file.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}

// Rebuild drops the index contents and repopulates them from the wiki,
// journal, meeting, and list stores. It returns the number of indexed
// documents. Only one process may rebuild at a time; a concurrent rebuild
// fails with ErrIndexLocked.
func (d *Database) Rebuild(dataDir string) (int, error) {
	lock, err := acquireIndexLock(filepath.Join(dataDir, ".mystuff"))
	if err != nil {
		return 0, err
	}
	defer lock.Release()

	docs, err := collect(dataDir)
	if err != nil {
		return 0, err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM documents`); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`DELETE FROM fts_content`); err != nil {
		return 0, err
	}

	now := time.Now().Unix()
	for _, doc := range docs {
		id := doc.store + ":" + doc.path
		if _, err := tx.Exec(
			`INSERT INTO documents (id, store, path, title, indexed_at) VALUES (?, ?, ?, ?, ?)`,
			id, doc.store, doc.path, doc.title, now,
		); err != nil {
			return 0, fmt.Errorf("indexing %s: %w", doc.path, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO fts_content (doc_id, title, content, path) VALUES (?, ?, ?, ?)`,
			id, doc.title, doc.content, doc.path,
		); err != nil {
			return 0, fmt.Errorf("indexing %s: %w", doc.path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func wikiDir(dataDir string) string {
	return filepath.Join(dataDir, wiki.DirName)
}

func collect(dataDir string) ([]document, error) {
	var docs []document

	wikiStore := wiki.NewStore(wikiDir(dataDir))
	wikiStore.Warnf = func(string, ...interface{}) {}
	notes, err := wikiStore.List()
	if err != nil {
		return nil, fmt.Errorf("reading wiki: %w", err)
	}
	for _, n := range notes {
		docs = append(docs, document{
			store:   StoreWiki,
			path:    n.Path,
			title:   n.Title,
			content: n.Body,
		})
	}

	entries, err := journal.NewStore(dataDir).List()
	if err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}
	for _, e := range entries {
		docs = append(docs, document{
			store:   StoreJournal,
			path:    e.Path,
			title:   e.Date,
			content: e.Body,
		})
	}

	allMeetings, err := meetings.NewStore(dataDir).List()
	if err != nil {
		return nil, fmt.Errorf("reading meetings: %w", err)
	}
	for _, m := range allMeetings {
		docs = append(docs, document{
			store:   StoreMeeting,
			path:    m.Path,
			title:   m.Title,
			content: m.Body,
		})
	}

	allLists, err := lists.NewStore(dataDir).All()
	if err != nil {
		return nil, fmt.Errorf("reading lists: %w", err)
	}
	for _, l := range allLists {
		var content string
		for _, item := range l.Items {
			content += item.Text + "\n"
		}
		docs = append(docs, document{
			store:   StoreList,
			path:    l.Path,
			title:   l.Name,
			content: content,
		})
	}

	return docs, nil
}

//go:build ignore

package main

import (
	"bufio"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// One-off importer for notes kept as markdown journals before minutes
// existed. Files are expected to look like:
//
//	# 2025-05-12
//	- first note of the day
//	- [ ] an action item
//
// Day headings start a new batch; "- [ ]" / "- [x]" bullets become action
// items, plain bullets become notes. Imported notes are marked completed so
// they never enter the extraction pool.

var dayHeading = regexp.MustCompile(`^#\s+(\d{4}-\d{2}-\d{2})\s*$`)

func main() {
	dryRun := flag.Bool("dry-run", false, "Preview import without executing")
	meetingID := flag.String("meeting", "", "Meeting ID to import into (required)")
	flag.Parse()

	if *meetingID == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: import_markdown_notes --meeting MEET-001 [--dry-run] journal.md")
		os.Exit(1)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
		os.Exit(1)
	}
	dbPath := filepath.Join(homeDir, ".minutes", "minutes.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var exists int
	if err := db.QueryRow("SELECT COUNT(*) FROM meetings WHERE id = ?", *meetingID).Scan(&exists); err != nil || exists == 0 {
		fmt.Fprintf(os.Stderr, "Meeting %s not found\n", *meetingID)
		os.Exit(1)
	}

	days, err := parseJournal(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing journal: %v\n", err)
		os.Exit(1)
	}
	if len(days) == 0 {
		fmt.Println("No notes found to import")
		return
	}

	totalNotes, totalActions := 0, 0
	for _, d := range days {
		fmt.Printf("  %s: %d note(s), %d action item(s)\n", d.day, len(d.notes), len(d.actions))
		totalNotes += len(d.notes)
		totalActions += len(d.actions)
	}
	fmt.Printf("\nFound %d note(s) and %d action item(s) across %d day(s)\n\n", totalNotes, totalActions, len(days))

	if *dryRun {
		fmt.Println("=== DRY RUN - No changes made ===")
		return
	}

	fmt.Println("=== Executing import ===")
	imported := 0
	for _, d := range days {
		if err := importDay(db, *meetingID, d); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", d.day, err)
			continue
		}
		fmt.Printf("✓ Imported %s\n", d.day)
		imported++
	}
	fmt.Printf("\n=== Import complete: %d/%d days imported ===\n", imported, len(days))
}

type journalDay struct {
	day     string
	notes   []string
	actions []string
}

func parseJournal(path string) ([]journalDay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var days []journalDay
	var current *journalDay
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if m := dayHeading.FindStringSubmatch(line); m != nil {
			days = append(days, journalDay{day: m[1]})
			current = &days[len(days)-1]
			continue
		}
		if current == nil || !strings.HasPrefix(line, "- ") {
			continue
		}
		body := strings.TrimSpace(strings.TrimPrefix(line, "- "))
		if strings.HasPrefix(body, "[ ]") || strings.HasPrefix(body, "[x]") {
			text := strings.TrimSpace(body[3:])
			if text != "" {
				current.actions = append(current.actions, text)
			}
		} else if body != "" {
			current.notes = append(current.notes, body)
		}
	}
	return days, scanner.Err()
}

func importDay(db *sql.DB, meetingID string, d journalDay) error {
	day, err := time.Parse("2006-01-02", d.day)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	batchID := fmt.Sprintf("import-%s-%s", meetingID, d.day)
	var exists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM note_batches WHERE meeting_id = ? AND day = ?", meetingID, d.day).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return fmt.Errorf("batch for %s already exists, skipping", d.day)
	}
	if _, err := tx.Exec("INSERT INTO note_batches (id, meeting_id, day) VALUES (?, ?, ?)", batchID, meetingID, d.day); err != nil {
		return err
	}

	for i, text := range d.notes {
		created := day.Add(time.Duration(i) * time.Second)
		_, err := tx.Exec(
			"INSERT INTO notes (batch_id, position, text, created_at, action_status) VALUES (?, ?, ?, ?, 'completed')",
			batchID, i, text, created,
		)
		if err != nil {
			return err
		}
	}

	for _, text := range d.actions {
		var dup int
		if err := tx.QueryRow("SELECT COUNT(*) FROM action_items WHERE meeting_id = ? AND text = ?", meetingID, text).Scan(&dup); err != nil {
			return err
		}
		if dup > 0 {
			continue
		}
		id, err := nextActionID(tx)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			"INSERT INTO action_items (id, meeting_id, batch_id, text, status) VALUES (?, ?, ?, ?, 'open')",
			id, meetingID, batchID, text,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func nextActionID(tx *sql.Tx) (string, error) {
	rows, err := tx.Query("SELECT id FROM action_items WHERE id LIKE 'ACT-%'")
	if err != nil {
		return "", err
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		var n int
		if _, err := fmt.Sscanf(id, "ACT-%d", &n); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("ACT-%03d", max+1), rows.Err()
}

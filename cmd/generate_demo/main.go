// Command generate_demo creates a demo database with a small catalog,
// a few members and some loans, one of them overdue.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/mrlokans/librarydesk/internal/database"
	"github.com/mrlokans/librarydesk/internal/database/books"
	"github.com/mrlokans/librarydesk/internal/database/members"
	"github.com/mrlokans/librarydesk/internal/database/transactions"
	"github.com/mrlokans/librarydesk/internal/entities"
	"github.com/mrlokans/librarydesk/internal/services"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath, database.WithLogLevel("silent"))
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	library := services.NewLibrary(
		books.NewRepository(db.DB),
		members.NewRepository(db.DB),
		transactions.NewRepository(db.DB),
		services.WithAtomicCirculation(true),
	)

	ctx := context.Background()
	catalog := addBooks(ctx, library)
	people := addMembers(ctx, library)
	addLoans(ctx, library, catalog, people)

	log.Println("Demo database generated successfully!")
}

func addBooks(ctx context.Context, library *services.Library) []*entities.Book {
	inputs := []services.BookInput{
		{Title: "Meditations", Author: "Marcus Aurelius", Category: "Philosophy"},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Category: "Classic"},
		{Title: "Moby-Dick", Author: "Herman Melville", Category: "Classic"},
		{Title: "The Time Machine", Author: "H. G. Wells", Category: "Sci-Fi"},
		{Title: "On the Origin of Species", Author: "Charles Darwin", Category: "Science"},
		{Title: "Frankenstein", Author: "Mary Shelley", Category: "Fiction"},
	}

	var saved []*entities.Book
	for _, in := range inputs {
		book, err := library.AddBook(ctx, in)
		if err != nil {
			log.Printf("Failed to save book %s: %v", in.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s", book.Title, book.Author)
		saved = append(saved, book)
	}
	return saved
}

func addMembers(ctx context.Context, library *services.Library) []*entities.Member {
	inputs := []services.MemberInput{
		{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0101"},
		{Name: "Alan Turing", Email: "alan@example.com", Phone: "555-0102"},
		{Name: "Grace Hopper", Email: "grace@example.com", Phone: "555-0103"},
	}

	var saved []*entities.Member
	for _, in := range inputs {
		member, err := library.AddMember(ctx, in)
		if err != nil {
			log.Printf("Failed to save member %s: %v", in.Name, err)
			continue
		}
		log.Printf("Saved member: %s", member.Name)
		saved = append(saved, member)
	}
	return saved
}

func addLoans(ctx context.Context, library *services.Library, catalog []*entities.Book, people []*entities.Member) {
	if len(catalog) < 3 || len(people) < 2 {
		log.Printf("Not enough books or members to create loans")
		return
	}

	now := time.Now().UTC()
	loans := []struct {
		book   *entities.Book
		member *entities.Member
		due    time.Time
		back   bool
	}{
		{catalog[0], people[0], now.AddDate(0, 0, 14), false},
		{catalog[1], people[1], now.AddDate(0, 0, -3), false}, // overdue
		{catalog[2], people[0], now.AddDate(0, 0, 7), true},
	}

	for _, loan := range loans {
		tx, err := library.BorrowBook(ctx, services.TransactionInput{
			BookID:   loan.book.ID,
			MemberID: loan.member.ID,
			DueDate:  loan.due.Format(entities.DueDateLayout),
		})
		if err != nil {
			log.Printf("Failed to lend %s: %v", loan.book.Title, err)
			continue
		}
		log.Printf("Lent %s to %s until %s", loan.book.Title, loan.member.Name, tx.DueDate.Format(entities.DueDateLayout))

		if loan.back {
			if _, err := library.ReturnBook(ctx, tx.ID, loan.book.ID); err != nil {
				log.Printf("Failed to return %s: %v", loan.book.Title, err)
			}
		}
	}
}

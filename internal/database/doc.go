// Package database is the persistence provider for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, DSN, migrations
//	├── driver.go        # sqlite3 driver with casefold(), constraint error helpers
//	├── repository/      # Generic Repository[T] and the typed Query builder
//	└── audit/           # Audit event storage
//
// Tables follow the library schema:
//
//	author(author_id PK, author_name, author_birth_date, author_date_of_death)
//	book(book_id PK, book_isbn, book_title, book_publication_year, author_id FK -> author.author_id)
//
// Foreign keys are enforced by SQLite (the DSN sets _foreign_keys=on), so inserting
// a book for a missing author, or deleting an author that still has books, fails
// with a constraint error. Use IsForeignKeyViolation to detect it.
//
// # Using Repositories
//
//	db, err := database.NewDatabase("./data/library.sqlite")
//
//	err = db.DB.Transaction(func(tx *gorm.DB) error {
//		books := repository.New[entities.Book](tx)
//		_, err := books.Delete(ctx, 42)
//		return err
//	})
package database

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/alimgiray/persondir/internal/models"
)

// PersonStore is the persistence boundary of the person directory. It holds no
// business rules; email uniqueness is checked by the service and backed by a
// UNIQUE index.
type PersonStore interface {
	// Save inserts a transient person (assigning its ID) or overwrites every
	// field of a persisted one.
	Save(ctx context.Context, person *models.Person) (*models.Person, error)
	FindByID(ctx context.Context, id int64) (*models.Person, error)
	FindByEmail(ctx context.Context, email string) (*models.Person, error)
	FindAll(ctx context.Context) ([]*models.Person, error)
	// DeleteByID removes the person if present; deleting a missing id is a no-op.
	DeleteByID(ctx context.Context, id int64) error

	// FindByName and its three variants all match first and last name exactly.
	// They differ only in how the query is built.
	FindByName(ctx context.Context, firstName, lastName string) (*models.Person, error)
	FindByNameNamedParams(ctx context.Context, firstName, lastName string) (*models.Person, error)
	FindByNativeSQL(ctx context.Context, firstName, lastName string) (*models.Person, error)
	FindByNativeSQLNamedParams(ctx context.Context, firstName, lastName string) (*models.Person, error)

	// WithTx runs fn against a store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(store PersonStore) error) error
}

const personColumns = `id, first_name, last_name, address, gender, email`

type PersonRepository struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

func NewPersonRepository(db *sqlx.DB) *PersonRepository {
	return &PersonRepository{db: db, q: db}
}

// Save creates or updates a person
func (r *PersonRepository) Save(ctx context.Context, person *models.Person) (*models.Person, error) {
	if !person.IsPersisted() {
		return r.insert(ctx, person)
	}
	return r.update(ctx, person)
}

func (r *PersonRepository) insert(ctx context.Context, person *models.Person) (*models.Person, error) {
	query := `
		INSERT INTO people (
			first_name, last_name, address, gender, email
		) VALUES (:first_name, :last_name, :address, :gender, :email)
	`

	result, err := sqlx.NamedExecContext(ctx, r.q, query, person)
	if err != nil {
		return nil, translateWriteError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	saved := *person
	saved.ID = id
	return &saved, nil
}

func (r *PersonRepository) update(ctx context.Context, person *models.Person) (*models.Person, error) {
	query := `
		UPDATE people SET
			first_name = :first_name, last_name = :last_name, address = :address,
			gender = :gender, email = :email
		WHERE id = :id
	`

	result, err := sqlx.NamedExecContext(ctx, r.q, query, person)
	if err != nil {
		return nil, translateWriteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("person %d: %w", person.ID, models.ErrNotFound)
	}

	saved := *person
	return &saved, nil
}

// FindByID retrieves a person by ID
func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*models.Person, error) {
	query := r.q.Rebind(`SELECT ` + personColumns + ` FROM people WHERE id = ?`)

	person := &models.Person{}
	if err := sqlx.GetContext(ctx, r.q, person, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("person %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("query person by id: %w", err)
	}
	return person, nil
}

// FindByEmail retrieves a person by email
func (r *PersonRepository) FindByEmail(ctx context.Context, email string) (*models.Person, error) {
	query := r.q.Rebind(`SELECT ` + personColumns + ` FROM people WHERE email = ?`)

	person := &models.Person{}
	if err := sqlx.GetContext(ctx, r.q, person, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("person with email %q: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("query person by email: %w", err)
	}
	return person, nil
}

// FindAll retrieves every person ordered by ID
func (r *PersonRepository) FindAll(ctx context.Context) ([]*models.Person, error) {
	people := []*models.Person{}
	if err := sqlx.SelectContext(ctx, r.q, &people, `SELECT `+personColumns+` FROM people ORDER BY id`); err != nil {
		return nil, fmt.Errorf("query people: %w", err)
	}
	return people, nil
}

// DeleteByID deletes a person by ID
func (r *PersonRepository) DeleteByID(ctx context.Context, id int64) error {
	query := r.q.Rebind(`DELETE FROM people WHERE id = ?`)
	if _, err := r.q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return nil
}

// FindByName builds the query with driver placeholders and scans into the
// struct by column tags.
func (r *PersonRepository) FindByName(ctx context.Context, firstName, lastName string) (*models.Person, error) {
	query := r.q.Rebind(`
		SELECT ` + personColumns + ` FROM people
		WHERE first_name = ? AND last_name = ?
		LIMIT 2
	`)

	var people []*models.Person
	if err := sqlx.SelectContext(ctx, r.q, &people, query, firstName, lastName); err != nil {
		return nil, fmt.Errorf("query person by name: %w", err)
	}
	return singleMatch(people, firstName, lastName)
}

// FindByNameNamedParams binds :first_name and :last_name through sqlx.
func (r *PersonRepository) FindByNameNamedParams(ctx context.Context, firstName, lastName string) (*models.Person, error) {
	query, args, err := r.q.BindNamed(`
		SELECT `+personColumns+` FROM people
		WHERE first_name = :first_name AND last_name = :last_name
		LIMIT 2
	`, map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
	})
	if err != nil {
		return nil, fmt.Errorf("bind name query: %w", err)
	}

	var people []*models.Person
	if err := sqlx.SelectContext(ctx, r.q, &people, query, args...); err != nil {
		return nil, fmt.Errorf("query person by name: %w", err)
	}
	return singleMatch(people, firstName, lastName)
}

// FindByNativeSQL runs a hand-written SQLite query with numbered parameters
// and scans columns by position.
func (r *PersonRepository) FindByNativeSQL(ctx context.Context, firstName, lastName string) (*models.Person, error) {
	query := `
		SELECT id, first_name, last_name, address, gender, email FROM people
		WHERE first_name = ?1 AND last_name = ?2
		LIMIT 2
	`

	rows, err := r.q.QueryContext(ctx, query, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("query person by name: %w", err)
	}
	return scanNameMatches(rows, firstName, lastName)
}

// FindByNativeSQLNamedParams runs a hand-written SQLite query with
// database/sql named arguments.
func (r *PersonRepository) FindByNativeSQLNamedParams(ctx context.Context, firstName, lastName string) (*models.Person, error) {
	query := `
		SELECT id, first_name, last_name, address, gender, email FROM people
		WHERE first_name = :firstName AND last_name = :lastName
		LIMIT 2
	`

	rows, err := r.q.QueryContext(ctx, query,
		sql.Named("firstName", firstName),
		sql.Named("lastName", lastName),
	)
	if err != nil {
		return nil, fmt.Errorf("query person by name: %w", err)
	}
	return scanNameMatches(rows, firstName, lastName)
}

// WithTx runs fn inside a transaction
func (r *PersonRepository) WithTx(ctx context.Context, fn func(store PersonStore) error) error {
	if _, ok := r.q.(*sqlx.Tx); ok {
		// Already inside a transaction
		return fn(r)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&PersonRepository{db: r.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func scanNameMatches(rows *sql.Rows, firstName, lastName string) (*models.Person, error) {
	defer rows.Close()

	var people []*models.Person
	for rows.Next() {
		person := &models.Person{}
		err := rows.Scan(
			&person.ID, &person.FirstName, &person.LastName, &person.Address, &person.Gender, &person.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}

	return singleMatch(people, firstName, lastName)
}

func singleMatch(people []*models.Person, firstName, lastName string) (*models.Person, error) {
	switch len(people) {
	case 0:
		return nil, fmt.Errorf("person named %s %s: %w", firstName, lastName, models.ErrNotFound)
	case 1:
		return people[0], nil
	default:
		return nil, fmt.Errorf("person named %s %s: %w", firstName, lastName, models.ErrAmbiguousMatch)
	}
}

// translateWriteError maps a UNIQUE violation (email) to ErrDuplicateResource
func translateWriteError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("person email: %w", models.ErrDuplicateResource)
	}
	return fmt.Errorf("write person: %w", err)
}

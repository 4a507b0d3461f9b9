package client

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/dmitrijs2005/legacyvault/internal/client/models"
	"github.com/dmitrijs2005/legacyvault/internal/dbx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresDataClient reads the BaaS tables directly. It serves trusted
// tooling and integration environments that hold database credentials.
type PostgresDataClient struct {
	db *sql.DB
}

func NewPostgresDataClient(db *sql.DB) *PostgresDataClient {
	return &PostgresDataClient{db: db}
}

// OpenPostgresDataClient connects with the pgx driver.
func OpenPostgresDataClient(ctx context.Context, dsn string) (*PostgresDataClient, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, dbError(err)
	}
	return NewPostgresDataClient(db), nil
}

func (c *PostgresDataClient) Close() error {
	return c.db.Close()
}

// dbError maps driver failures onto the client error kinds.
func dbError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, sql.ErrConnDone) {
		return transportError(err)
	}
	return &Error{Kind: KindBusiness, Message: "Database request failed.", Err: err}
}

func (c *PostgresDataClient) DirectorByAuthUserID(ctx context.Context, authUserID string) (*models.Director, error) {
	query :=
		`SELECT id, first_name, last_name, auth_user_id, created_at FROM directors
		 WHERE auth_user_id = $1
		 LIMIT 1`

	var (
		d         models.Director
		firstName sql.NullString
		lastName  sql.NullString
	)
	err := c.db.QueryRowContext(ctx, query, authUserID).Scan(&d.ID, &firstName, &lastName, &d.AuthUserID, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundError("director")
		}
		return nil, dbError(err)
	}
	d.FirstName = firstName.String
	d.LastName = lastName.String
	return &d, nil
}

func (c *PostgresDataClient) MessagesByDirector(ctx context.Context, directorID string) ([]models.Message, error) {
	query :=
		`SELECT m.id, m.message_type, m.content, m.scheduled_at, m.created_at, m.director_id, m.actor_id,
		        COALESCE(a.first_name, ''), COALESCE(a.last_name, ''),
		        mm.media_url, mm.media_type
		 FROM messages m
		 LEFT JOIN actors a ON a.id = m.actor_id
		 LEFT JOIN message_media mm ON mm.message_id = m.id
		 WHERE m.director_id = $1
		 ORDER BY m.scheduled_at DESC, m.id`

	rows, err := c.db.QueryContext(ctx, query, directorID)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	// one row per (message, media) pair; fold them back into messages
	messages := make([]models.Message, 0)
	index := make(map[string]int)
	for rows.Next() {
		var (
			m         models.Message
			content   sql.NullString
			mediaURL  sql.NullString
			mediaType sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.MessageType, &content, &m.ScheduledAt, &m.CreatedAt, &m.DirectorID, &m.ActorID,
			&m.Child.FirstName, &m.Child.LastName, &mediaURL, &mediaType); err != nil {
			return nil, dbError(err)
		}

		i, seen := index[m.ID]
		if !seen {
			if content.Valid {
				s := content.String
				m.Content = &s
			}
			messages = append(messages, m)
			i = len(messages) - 1
			index[m.ID] = i
		}
		if mediaURL.Valid {
			messages[i].MessageMedia = append(messages[i].MessageMedia,
				models.MessageMedia{MediaURL: mediaURL.String, MediaType: mediaType.String})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}

	models.SortByScheduledDesc(messages)
	return messages, nil
}

func (c *PostgresDataClient) Categories(ctx context.Context) ([]models.Category, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name, emoji FROM categories ORDER BY name`)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var (
			cat   models.Category
			emoji sql.NullString
		)
		if err := rows.Scan(&cat.ID, &cat.Name, &emoji); err != nil {
			return nil, dbError(err)
		}
		if emoji.Valid {
			e := emoji.String
			cat.Emoji = &e
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}
	return categories, nil
}

func (c *PostgresDataClient) SaveDirectorCategories(ctx context.Context, directorID string, categoryIDs []string) (*models.CategorySaveResult, error) {
	query :=
		`INSERT INTO director_categories (director_id, category_id)
		 VALUES ($1, $2)
		 ON CONFLICT (director_id, category_id) DO NOTHING`

	res := &models.CategorySaveResult{}
	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, id := range categoryIDs {
			r, err := tx.ExecContext(ctx, query, directorID, id)
			if err != nil {
				return err
			}
			n, err := r.RowsAffected()
			if err != nil {
				return err
			}
			if n > 0 {
				res.SavedCount++
			} else {
				res.ExistingCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, dbError(err)
	}
	return res, nil
}

//+build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	m "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Decentr-net/argus/internal/normalizer"
	"github.com/Decentr-net/argus/internal/storage"
)

var (
	db  *sql.DB
	ctx = context.Background()
	s   storage.Storage
)

func TestMain(m *testing.M) {
	shutdown := setup()

	s = New(db)

	code := m.Run()
	shutdown()
	os.Exit(code)
}

func setup() func() {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:12",
		Env:          map[string]string{"POSTGRES_PASSWORD": "root"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
	})
	if err != nil {
		logrus.WithError(err).Fatalf("failed to create container")
	}

	if err := c.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to start container")
	}

	host, err := c.Host(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to get host")
	}

	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		logrus.WithError(err).Fatal("failed to map port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=postgres password=root sslmode=disable", host, port.Int())

	db, err = sql.Open("postgres", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open connection")
	}

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	shutdownFn := func() {
		if c != nil {
			c.Terminate(ctx)
		}
	}

	migrate("postgres", "root", host, "postgres", port.Int())

	return shutdownFn
}

func migrate(username, password, hostname, dbname string, port int) {
	_, currFile, _, ok := runtime.Caller(0)
	if !ok {
		logrus.Fatal("failed to get current file location")
	}

	migrations := filepath.Join(currFile, "../../../../scripts/migrations/postgres/")

	migrator, err := m.New(
		fmt.Sprintf("file://%s", migrations),
		fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			username, password, hostname, port, dbname),
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}
}

func cleanup(t *testing.T) {
	_, err := db.ExecContext(ctx, `DELETE FROM post_metric`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM post`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM mention`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM keyword`)
	require.NoError(t, err)
}

func createPost(t *testing.T, text string, publishedAt *time.Time) int64 {
	var id int64
	require.NoError(t, db.QueryRowContext(ctx, `
		INSERT INTO post(id_publicacion, plataforma, texto, fecha, me_gusta, comentarios, compartidos, tipo_contenido)
		VALUES($1, 'Facebook', $2, $3, 3, 2, 1, 'photo')
		RETURNING id
	`, "ext_"+text, text, publishedAt).Scan(&id))

	return id
}

func TestPg_Ping(t *testing.T) {
	require.NoError(t, s.Ping(ctx))
}

func TestPg_ListPosts(t *testing.T) {
	defer cleanup(t)

	day := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	before := day.Add(-48 * time.Hour)

	createPost(t, "old", &before)
	createPost(t, "current", &day)
	createPost(t, "undated", nil)

	to := day.Add(time.Hour)
	pp, err := s.ListPosts(ctx, &storage.ListPostsParams{From: &day, To: &to})
	require.NoError(t, err)
	require.Len(t, pp, 1)
	assert.Equal(t, "current", pp[0]["texto"])

	pp, err = s.ListPosts(ctx, &storage.ListPostsParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, pp, 2)
	// undated post falls back to its creation time
	assert.Equal(t, "undated", pp[0]["texto"])

	n := normalizer.New(normalizer.NewIDGenerator())
	p := n.Post(pp[1])
	assert.Equal(t, "current", p.Text)
	assert.EqualValues(t, 3, p.Likes)
	assert.Equal(t, "Imagen", string(p.ContentType))
	assert.True(t, day.Equal(p.PublishedAt))
	assert.True(t, p.Tracked)
}

func TestPg_GetPost_SetTracked(t *testing.T) {
	defer cleanup(t)

	id := createPost(t, "post", nil)

	require.NoError(t, s.SetTracked(ctx, id, false))

	p, err := s.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, false, p["seguimiento"])

	_, err = s.GetPost(ctx, id+1)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
	assert.True(t, errors.Is(s.SetTracked(ctx, id+1, true), storage.ErrNotFound))
}

func TestPg_ListPostMetrics(t *testing.T) {
	defer cleanup(t)

	id := createPost(t, "post", nil)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := db.ExecContext(ctx, `
		INSERT INTO post_metric(post_id, likes, comments, shares, views, collected_at)
		VALUES($1, 5, 1, 0, NULL, $2), ($1, 4, 1, 0, 10, $3)
	`, id, at, at.Add(-time.Hour))
	require.NoError(t, err)

	mm, err := s.ListPostMetrics(ctx, id)
	require.NoError(t, err)
	require.Len(t, mm, 2)
	assert.EqualValues(t, 4, mm[0].Likes)
	assert.EqualValues(t, 10, mm[0].Views)
	assert.EqualValues(t, 5, mm[1].Likes)
	assert.EqualValues(t, 0, mm[1].Views)
}

func TestPg_ListMentions(t *testing.T) {
	defer cleanup(t)

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := db.ExecContext(ctx, `
		INSERT INTO mention(source_name, content, published_at, collected_at)
		VALUES('diario', 'primera', $1, $1), ('radio', 'segunda', NULL, $2)
	`, at, at.Add(time.Hour))
	require.NoError(t, err)

	mm, err := s.ListMentions(ctx, &storage.ListMentionsParams{})
	require.NoError(t, err)
	require.Len(t, mm, 2)
	assert.Equal(t, "segunda", mm[0]["content"])
	assert.Equal(t, "primera", mm[1]["content"])
}

func TestPg_Keywords(t *testing.T) {
	defer cleanup(t)

	k, err := s.CreateKeyword(ctx, "Feria", true)
	require.NoError(t, err)
	assert.True(t, k.Active)

	_, err = s.CreateKeyword(ctx, "concierto", false)
	require.NoError(t, err)

	kk, err := s.ListKeywords(ctx, &storage.ListKeywordsParams{})
	require.NoError(t, err)
	require.Len(t, kk, 1)

	kk, err = s.ListKeywords(ctx, &storage.ListKeywordsParams{IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, kk, 2)

	kk, err = s.ListKeywords(ctx, &storage.ListKeywordsParams{Search: "feri"})
	require.NoError(t, err)
	require.Len(t, kk, 1)
	assert.Equal(t, k.ID, kk[0].ID)

	word := "Feria del libro"
	k, err = s.UpdateKeyword(ctx, k.ID, &storage.UpdateKeywordParams{Word: &word})
	require.NoError(t, err)
	assert.Equal(t, word, k.Word)
	assert.True(t, k.Active)

	k, err = s.ToggleKeyword(ctx, k.ID)
	require.NoError(t, err)
	assert.False(t, k.Active)

	got, err := s.GetKeyword(ctx, k.ID)
	require.NoError(t, err)
	assert.Equal(t, k.Word, got.Word)
	assert.False(t, got.Active)

	_, err = s.GetKeyword(ctx, k.ID+100)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
	_, err = s.ToggleKeyword(ctx, k.ID+100)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

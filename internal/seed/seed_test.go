package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xanke/disney-sns/internal/database"
	"github.com/xanke/disney-sns/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yml")
	require.NoError(t, os.WriteFile(path, []byte("users: 4\nlikes_per_post: 2\nrandom_seed: 7\n"), 0o600))

	p, err := LoadPreset(path)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Users)
	assert.Equal(t, 2, p.LikesPerPost)
	assert.Equal(t, int64(7), p.RandomSeed)
	assert.Equal(t, DefaultPreset().PostsPerUser, p.PostsPerUser, "unset keys keep defaults")
}

func TestLoadPreset_Invalid(t *testing.T) {
	dir := t.TempDir()

	tooManyViews := filepath.Join(dir, "views.yml")
	require.NoError(t, os.WriteFile(tooManyViews, []byte("users: 2\nviews_per_post: 2\n"), 0o600))
	_, err := LoadPreset(tooManyViews)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.yml")
	require.NoError(t, os.WriteFile(broken, []byte("users: [\n"), 0o600))
	_, err = LoadPreset(broken)
	assert.Error(t, err)

	_, err = LoadPreset(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestSeeder_Run(t *testing.T) {
	db := setupTestDB(t)
	preset := Preset{Users: 4, PostsPerUser: 2, ViewsPerPost: 3, LikesPerPost: 2, CommentsPerPost: 1, RandomSeed: 42}

	sum, err := NewSeeder(db, preset).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Summary{Users: 4, Posts: 8, Views: 24, Likes: 16, Comments: 8}, sum)

	var views int64
	require.NoError(t, db.Model(&models.Post{}).Select("COALESCE(SUM(views), 0)").Scan(&views).Error)
	assert.Equal(t, int64(24), views)

	var likes, pvs int64
	require.NoError(t, db.Model(&models.Dynam{}).Where("kind = ?", models.DynamKindLike).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Dynam{}).Where("kind = ?", models.DynamKindView).Count(&pvs).Error)
	assert.Equal(t, int64(16), likes)
	assert.Equal(t, int64(24), pvs)

	var selfActivity int64
	require.NoError(t, db.Model(&models.Dynam{}).Where("actor_id = target_author_id").Count(&selfActivity).Error)
	assert.Zero(t, selfActivity)

	require.NoError(t, ClearAll(db))
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"

	"github.com/xanke/disney-sns/internal/middleware"
	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/repository"
	"github.com/xanke/disney-sns/internal/service"
)

// Summary counts what a run created.
type Summary struct {
	Users    int
	Posts    int
	Views    int
	Likes    int
	Comments int
}

// Seeder writes a Preset worth of data.
type Seeder struct {
	db       *gorm.DB
	preset   Preset
	faker    *gofakeit.Faker
	users    repository.UserRepository
	posts    *service.PostService
	comments *service.CommentService
	clock    time.Time
}

// NewSeeder builds a Seeder over db. Posts are stamped on a simulated clock
// that steps past the publish cooldown, spread over the last days.
func NewSeeder(db *gorm.DB, preset Preset) *Seeder {
	s := &Seeder{
		db:     db,
		preset: preset,
		faker:  gofakeit.New(preset.RandomSeed),
		users:  repository.NewUserRepository(db),
	}

	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	activity := service.NewActivityService(repository.NewDynamRepository(db), nil)
	cooldown := service.NewPostCooldown(service.DefaultPostCooldown).WithClock(func() time.Time { return s.clock })

	s.posts = service.NewPostService(postRepo, s.users, commentRepo, activity, service.PostServiceConfig{Cooldown: cooldown})
	s.comments = service.NewCommentService(commentRepo, postRepo, s.users)
	return s
}

// Run creates users, then their posts, then views, likes and comments from
// the other users.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	if err := s.preset.Validate(); err != nil {
		return nil, err
	}
	sum := &Summary{}
	total := s.preset.Users * s.preset.PostsPerUser
	s.clock = time.Now().Add(-time.Duration(total+1) * time.Minute)

	users := make([]*models.User, 0, s.preset.Users)
	for i := 0; i < s.preset.Users; i++ {
		u := s.buildUser(i)
		if err := s.users.Create(ctx, u); err != nil {
			return sum, fmt.Errorf("create user %d: %w", i, err)
		}
		users = append(users, u)
		sum.Users++
	}

	for i, author := range users {
		for j := 0; j < s.preset.PostsPerUser; j++ {
			s.clock = s.clock.Add(time.Minute)
			post, err := s.posts.CreatePost(ctx, s.buildPost(author.ID))
			if err != nil {
				return sum, fmt.Errorf("create post for user %d: %w", author.ID, err)
			}
			sum.Posts++

			if err := s.engage(ctx, post, others(users, i), sum); err != nil {
				return sum, err
			}
		}
	}

	middleware.Logger.InfoContext(ctx, "seed complete",
		slog.Int("users", sum.Users),
		slog.Int("posts", sum.Posts),
		slog.Int("views", sum.Views),
		slog.Int("likes", sum.Likes),
		slog.Int("comments", sum.Comments),
	)
	return sum, nil
}

func (s *Seeder) engage(ctx context.Context, post *models.Post, audience []*models.User, sum *Summary) error {
	s.faker.ShuffleAnySlice(audience)

	for _, viewer := range audience[:s.preset.ViewsPerPost] {
		if _, err := s.posts.GetPostDetail(ctx, post.ID, viewer.ID); err != nil {
			return fmt.Errorf("view post %d: %w", post.ID, err)
		}
		sum.Views++
	}
	for _, liker := range audience[:s.preset.LikesPerPost] {
		if _, err := s.posts.LikePost(ctx, liker.ID, post.ID); err != nil {
			return fmt.Errorf("like post %d: %w", post.ID, err)
		}
		sum.Likes++
	}
	for k := 0; k < s.preset.CommentsPerPost && len(audience) > 0; k++ {
		commenter := audience[k%len(audience)]
		if _, err := s.comments.CreateComment(ctx, service.CreateCommentInput{
			UserID:  commenter.ID,
			PostID:  post.ID,
			Content: s.faker.Sentence(s.faker.Number(3, 12)),
		}); err != nil {
			return fmt.Errorf("comment on post %d: %w", post.ID, err)
		}
		sum.Comments++
	}
	return nil
}

func (s *Seeder) buildUser(i int) *models.User {
	gender := 1
	if s.faker.Gender() == "female" {
		gender = 2
	}
	return &models.User{
		OpenID:     fmt.Sprintf("seed-%d-%s", i, s.faker.UUID()),
		NickName:   s.faker.Username(),
		AvatarFile: fmt.Sprintf("https://picsum.photos/seed/%s/200/200", s.faker.UUID()),
		City:       s.faker.City(),
		Gender:     gender,
		Country:    s.faker.Country(),
	}
}

func (s *Seeder) buildPost(userID uint) service.CreatePostInput {
	in := service.CreatePostInput{
		UserID:  userID,
		Content: s.faker.Sentence(s.faker.Number(4, 20)),
	}
	if s.faker.Bool() {
		n := s.faker.Number(1, 4)
		for k := 0; k < n; k++ {
			in.Images = append(in.Images, fmt.Sprintf("https://picsum.photos/seed/%s/800/800", s.faker.UUID()))
		}
	}
	if s.faker.Number(0, 3) == 0 {
		in.Coordinates = []float64{s.faker.Longitude(), s.faker.Latitude()}
		in.PosName = s.faker.City()
	}
	return in
}

func others(users []*models.User, skip int) []*models.User {
	out := make([]*models.User, 0, len(users)-1)
	for i, u := range users {
		if i != skip {
			out = append(out, u)
		}
	}
	return out
}

// ClearAll removes every seeded table's rows, children first.
func ClearAll(db *gorm.DB) error {
	for _, m := range []interface{}{&models.Dynam{}, &models.Comment{}, &models.Post{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}
	return nil
}

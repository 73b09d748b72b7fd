package service

import (
	"bytes"
	"context"
	"hiphop_roadmap_backend/internal/config"
	"hiphop_roadmap_backend/internal/model"
	"hiphop_roadmap_backend/internal/repository"
	"hiphop_roadmap_backend/internal/roadmap"
	"hiphop_roadmap_backend/internal/util"
	"hiphop_roadmap_backend/pkg/database"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServices struct {
	db              *gorm.DB
	cfg             *config.Config
	auth            *AuthService
	users           *UserService
	skills          *SkillService
	progress        *ProgressService
	personalization *PersonalizationService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir(), PublicURL: "/uploads"},
	}

	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)

	auth := NewAuthService(userRepo, repository.NewTokenBlacklist(nil), cfg)
	skills := NewSkillService(skillRepo, repository.NewSkillCache(nil, time.Minute), NewStorageService(cfg))
	progress := NewProgressService(repository.NewProgressRepository(db), skillRepo)
	personalization := NewPersonalizationService(repository.NewPersonalizationRepository(db), skills)

	return &testServices{
		db:              db,
		cfg:             cfg,
		auth:            auth,
		users:           NewUserService(userRepo, auth, progress, personalization),
		skills:          skills,
		progress:        progress,
		personalization: personalization,
	}
}

func newSkill(id, category, difficulty string) *model.Skill {
	return &model.Skill{
		SkillID:       id,
		Title:         id,
		CategoryID:    category,
		CategoryTitle: category,
		Difficulty:    difficulty,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	user, token, err := s.auth.Register(ctx, "popper", "Popper@Example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "popper@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.Password)

	claims, err := s.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.NotEmpty(t, claims.ID)

	loggedIn, token, err := s.auth.Login(ctx, "POPPER@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	_, _, err := s.auth.Register(ctx, "taken", "taken@example.com", "secret1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		email    string
		password string
		want     error
	}{
		{"missing username", "", "a@example.com", "secret1", util.ErrMissingFields},
		{"missing email", "a", "", "secret1", util.ErrMissingFields},
		{"missing password", "a", "a@example.com", "", util.ErrMissingFields},
		{"short password", "a", "a@example.com", "12345", util.ErrPasswordTooShort},
		{"duplicate email", "other", "TAKEN@example.com", "secret1", util.ErrEmailRegistered},
		{"duplicate username", "taken", "other@example.com", "secret1", util.ErrUsernameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.auth.Register(ctx, tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	_, _, err := s.auth.Register(ctx, "locker", "locker@example.com", "secret1")
	require.NoError(t, err)

	_, _, err = s.auth.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = s.auth.Login(ctx, "locker@example.com", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = s.auth.Login(ctx, "", "")
	assert.ErrorIs(t, err, util.ErrMissingFields)
}

func TestAuthenticateRejectsForeignToken(t *testing.T) {
	s := newTestServices(t)
	token, err := util.GenerateJWT(&model.User{BaseModel: model.BaseModel{ID: 1}}, "other-secret", time.Hour)
	require.NoError(t, err)

	_, err = s.auth.Authenticate(context.Background(), token)
	assert.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	first, _, err := s.auth.Register(ctx, "first", "first@example.com", "secret1")
	require.NoError(t, err)
	_, _, err = s.auth.Register(ctx, "second", "second@example.com", "secret1")
	require.NoError(t, err)

	name := "renamed"
	email := "Renamed@Example.com"
	user, err := s.users.UpdateProfile(ctx, first.ID, ProfileUpdate{Username: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "renamed", user.Username)
	assert.Equal(t, "renamed@example.com", user.Email)

	// 保持自己的用户名不算冲突
	_, err = s.users.UpdateProfile(ctx, first.ID, ProfileUpdate{Username: &name})
	assert.NoError(t, err)

	taken := "second"
	_, err = s.users.UpdateProfile(ctx, first.ID, ProfileUpdate{Username: &taken})
	assert.ErrorIs(t, err, util.ErrUsernameTaken)

	takenEmail := "second@example.com"
	_, err = s.users.UpdateProfile(ctx, first.ID, ProfileUpdate{Email: &takenEmail})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	_, err = s.users.UpdateProfile(ctx, 999, ProfileUpdate{})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestSkillCreateValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	skill := newSkill("counting-beats", "rhythm-musicality", "Beginner")
	require.NoError(t, s.skills.Create(ctx, skill))
	assert.Equal(t, "beginner", skill.Difficulty)
	assert.NotNil(t, skill.KeyPoints)

	assert.ErrorIs(t, s.skills.Create(ctx, newSkill("counting-beats", "rhythm-musicality", "beginner")), util.ErrSkillExists)
	assert.ErrorIs(t, s.skills.Create(ctx, newSkill("", "rhythm-musicality", "beginner")), util.ErrSkillFieldsRequired)
	assert.ErrorIs(t, s.skills.Create(ctx, newSkill("x", "", "beginner")), util.ErrSkillFieldsRequired)
	assert.ErrorIs(t, s.skills.Create(ctx, newSkill("x", "rhythm-musicality", "expert")), util.ErrInvalidDifficulty)
}

func TestSkillUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	require.NoError(t, s.skills.Create(ctx, newSkill("two-step", "core-grooves", "beginner")))

	duration := "15 min"
	difficulty := "INTERMEDIATE"
	updated, err := s.skills.Update(ctx, "two-step", SkillUpdate{
		Duration:   &duration,
		Difficulty: &difficulty,
		KeyPoints:  []string{"step out", "step together"},
	})
	require.NoError(t, err)
	assert.Equal(t, "15 min", updated.Duration)
	assert.Equal(t, "intermediate", updated.Difficulty)
	assert.Equal(t, "two-step", updated.Title)
	assert.Len(t, updated.KeyPoints, 2)

	bad := "pro"
	_, err = s.skills.Update(ctx, "two-step", SkillUpdate{Difficulty: &bad})
	assert.ErrorIs(t, err, util.ErrInvalidDifficulty)

	_, err = s.skills.Update(ctx, "missing", SkillUpdate{Duration: &duration})
	assert.ErrorIs(t, err, util.ErrSkillNotFound)

	require.NoError(t, s.skills.Delete(ctx, "two-step"))
	assert.ErrorIs(t, s.skills.Delete(ctx, "two-step"), util.ErrSkillNotFound)
}

func TestSkillGetRendersDescription(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	skill := newSkill("popping-basics", "foundation-styles", "intermediate")
	skill.Description = "Hit on the **beat**"
	require.NoError(t, s.skills.Create(ctx, skill))

	detail, err := s.skills.Get(ctx, "popping-basics")
	require.NoError(t, err)
	assert.Contains(t, detail.DescriptionHTML, "<strong>beat</strong>")

	_, err = s.skills.Get(ctx, "missing")
	assert.ErrorIs(t, err, util.ErrSkillNotFound)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	inserted, err := s.skills.Seed(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, inserted)

	again, err := s.skills.Seed(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)

	grouped, err := s.skills.ListGrouped(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(grouped))
	total := 0
	for _, c := range grouped {
		ids = append(ids, c.ID)
		total += len(c.Skills)
	}
	assert.Equal(t, []string{"rhythm-musicality", "core-grooves", "isolations", "foundation-styles", "freestyle-basics"}, ids)
	assert.Equal(t, len(inserted), total)

	categories, err := s.skills.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 5)

	for _, skill := range inserted {
		_, ok := roadmap.ParseDifficulty(skill.Difficulty)
		assert.True(t, ok, skill.SkillID)
	}
}

func TestSeedSkipsExistingSkills(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	require.NoError(t, s.skills.Create(ctx, newSkill("counting-beats", "rhythm-musicality", "beginner")))

	inserted, err := s.skills.Seed(ctx)
	require.NoError(t, err)
	for _, skill := range inserted {
		assert.NotEqual(t, "counting-beats", skill.SkillID)
	}
}

func TestProgressFlow(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	require.NoError(t, s.skills.Create(ctx, newSkill("counting-beats", "rhythm-musicality", "beginner")))
	require.NoError(t, s.skills.Create(ctx, newSkill("basic-bounce", "core-grooves", "beginner")))
	require.NoError(t, s.skills.Create(ctx, newSkill("two-step", "core-grooves", "beginner")))

	p, err := s.progress.MarkComplete(ctx, 1, "counting-beats", "felt good")
	require.NoError(t, err)
	assert.True(t, p.Completed)
	assert.NotNil(t, p.CompletedAt)
	assert.Equal(t, "felt good", p.Notes)

	stats, err := s.progress.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ProgressStats{Total: 3, Completed: 1, Remaining: 2, Percentage: 33}, *stats)

	_, err = s.progress.MarkComplete(ctx, 1, "basic-bounce", "")
	require.NoError(t, err)
	stats, err = s.progress.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 67, stats.Percentage)

	p, err = s.progress.MarkIncomplete(ctx, 1, "counting-beats")
	require.NoError(t, err)
	assert.False(t, p.Completed)
	assert.Nil(t, p.CompletedAt)

	notes := "work on arms"
	p, err = s.progress.Update(ctx, 1, "two-step", ProgressUpdate{Notes: &notes})
	require.NoError(t, err)
	assert.False(t, p.Completed)
	assert.Equal(t, "work on arms", p.Notes)

	done := true
	p, err = s.progress.Update(ctx, 1, "two-step", ProgressUpdate{Completed: &done})
	require.NoError(t, err)
	assert.True(t, p.Completed)
	assert.Equal(t, "work on arms", p.Notes)

	list, err := s.progress.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	_, err = s.progress.MarkComplete(ctx, 1, "unknown-skill", "")
	assert.ErrorIs(t, err, util.ErrSkillNotFound)

	require.NoError(t, s.progress.Delete(ctx, 1, "two-step"))
	assert.ErrorIs(t, s.progress.Delete(ctx, 1, "two-step"), util.ErrProgressNotFound)
}

func TestProgressStatsEmptyCatalog(t *testing.T) {
	s := newTestServices(t)
	stats, err := s.progress.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.ProgressStats{}, *stats)
}

func TestPersonalizationRequiresCatalog(t *testing.T) {
	s := newTestServices(t)
	_, err := s.personalization.Save(context.Background(), 1, roadmap.QuizAnswers{DanceStyle: "freestyle"})
	assert.ErrorIs(t, err, util.ErrCatalogEmpty)
}

func TestPersonalizationLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	_, err := s.skills.Seed(ctx)
	require.NoError(t, err)

	_, err = s.personalization.Get(ctx, 1)
	assert.ErrorIs(t, err, util.ErrPersonalizationNotFound)
	_, err = s.personalization.Regenerate(ctx, 1)
	assert.ErrorIs(t, err, util.ErrPersonalizationNotFound)

	answers := roadmap.QuizAnswers{
		DanceStyle:      "breaking",
		ExperienceLevel: "complete-beginner",
		WeeklyHours:     "1-3",
		Goals:           []string{"battles"},
	}
	p, err := s.personalization.Save(ctx, 1, answers)
	require.NoError(t, err)

	generated := p.GeneratedRoadmap.Data()
	require.NotEmpty(t, generated.Categories)
	assert.Equal(t, "core-grooves", generated.Categories[0].ID)
	assert.Equal(t, 2, generated.RecommendedPerWeek)
	for _, c := range generated.Categories {
		for _, skill := range c.Skills {
			assert.Equal(t, "beginner", skill.Difficulty)
		}
	}
	require.Len(t, generated.GoalRecommendations, 1)
	assert.Equal(t, "Practice power moves and build your confidence", generated.GoalRecommendations[0].Message)
	assert.Equal(t, "breaking", p.Answers.Data().DanceStyle)

	// 目录变化后重新生成
	require.NoError(t, s.skills.Create(ctx, newSkill("extra-groove", "core-grooves", "beginner")))
	p, err = s.personalization.Regenerate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, generated.TotalSkills+1, p.GeneratedRoadmap.Data().TotalSkills)

	got, err := s.personalization.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	require.NoError(t, s.personalization.Delete(ctx, 1))
	assert.ErrorIs(t, s.personalization.Delete(ctx, 1), util.ErrPersonalizationNotFound)
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	user, _, err := s.auth.Register(ctx, "krumper", "krump@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, s.skills.Create(ctx, newSkill("counting-beats", "rhythm-musicality", "beginner")))

	overview, err := s.users.Overview(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "krumper", overview.User.Username)
	assert.Equal(t, 1, overview.Stats.Total)
	assert.Nil(t, overview.Personalization)

	_, err = s.personalization.Save(ctx, user.ID, roadmap.QuizAnswers{DanceStyle: "freestyle"})
	require.NoError(t, err)
	overview, err = s.users.Overview(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, overview.Personalization)

	_, err = s.users.Overview(ctx, 999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func videoHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

// 最小 MP4 文件头，足以被识别为 video/mp4
var mp4Header = append([]byte{0, 0, 0, 0x18}, []byte("ftypmp42\x00\x00\x00\x00mp42isom")...)

func TestStorageServiceLocal(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	storage := NewStorageService(&config.Config{
		Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: root, PublicURL: "/uploads/"},
	})

	src := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(src, mp4Header, 0644))

	url, err := storage.Upload(ctx, "videos/clip.mp4", src, "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/videos/clip.mp4", url)
	assert.FileExists(t, filepath.Join(root, "videos", "clip.mp4"))

	require.NoError(t, storage.RemoveByURL(ctx, "https://youtube.com/watch?v=abc"))
	require.NoError(t, storage.RemoveByURL(ctx, url))
	assert.NoFileExists(t, filepath.Join(root, "videos", "clip.mp4"))

	// 重复删除不报错
	require.NoError(t, storage.RemoveByURL(ctx, url))
}

func TestUploadVideo(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	skill := newSkill("toprock-basics", "foundation-styles", "beginner")
	skill.Duration = "10 min"
	require.NoError(t, s.skills.Create(ctx, skill))

	_, err := s.skills.UploadVideo(ctx, "missing", videoHeader(t, "clip.mp4", mp4Header))
	assert.ErrorIs(t, err, util.ErrSkillNotFound)

	_, err = s.skills.UploadVideo(ctx, "toprock-basics", videoHeader(t, "clip.txt", mp4Header))
	assert.ErrorIs(t, err, util.ErrInvalidFileType)

	_, err = s.skills.UploadVideo(ctx, "toprock-basics", videoHeader(t, "clip.mp4", []byte("plain text, not a video")))
	assert.ErrorIs(t, err, util.ErrInvalidFileType)

	first, err := s.skills.UploadVideo(ctx, "toprock-basics", videoHeader(t, "clip.mp4", mp4Header))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.VideoURL, "/uploads/videos/toprock-basics-"))
	assert.Equal(t, "10 min", first.Duration)

	root := s.cfg.Storage.LocalPath
	firstPath := filepath.Join(root, strings.TrimPrefix(first.VideoURL, "/uploads/"))
	assert.FileExists(t, firstPath)

	second, err := s.skills.UploadVideo(ctx, "toprock-basics", videoHeader(t, "clip.MP4", mp4Header))
	require.NoError(t, err)
	assert.NotEqual(t, first.VideoURL, second.VideoURL)
	assert.NoFileExists(t, firstPath)

	stored, err := s.skills.Get(ctx, "toprock-basics")
	require.NoError(t, err)
	assert.Equal(t, second.VideoURL, stored.VideoURL)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"malaka_backend/internal/model"
	"malaka_backend/internal/repository"
	"malaka_backend/internal/util"
	"malaka_backend/pkg/logger"
)

const (
	skillTreeCacheKey = "catalog:skill_tree"
	skillTreeCacheTTL = 10 * time.Minute
)

// CatalogService 技能/子技能/课程目录的读写，技能树走 Redis 缓存
type CatalogService struct {
	SkillRepo    *repository.SkillRepository
	LessonRepo   *repository.LessonRepository
	ProgressRepo *repository.ProgressRepository
	Redis        *redis.Client
}

func NewCatalogService(
	skillRepo *repository.SkillRepository,
	lessonRepo *repository.LessonRepository,
	progressRepo *repository.ProgressRepository,
	rdb *redis.Client,
) *CatalogService {
	return &CatalogService{
		SkillRepo:    skillRepo,
		LessonRepo:   lessonRepo,
		ProgressRepo: progressRepo,
		Redis:        rdb,
	}
}

// GetSkillTree 返回完整目录树，优先读缓存；缓存故障降级为直查数据库
func (s *CatalogService) GetSkillTree(ctx context.Context) ([]model.Skill, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, skillTreeCacheKey).Result()
		if err == nil {
			var skills []model.Skill
			if jsonErr := json.Unmarshal([]byte(val), &skills); jsonErr == nil {
				return skills, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("skill tree cache read failed", zap.Error(err))
		}
	}

	skills, err := s.SkillRepo.ListSkillTree()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(skills); err == nil {
			if err := s.Redis.Set(ctx, skillTreeCacheKey, data, skillTreeCacheTTL).Err(); err != nil {
				logger.Log.Warn("skill tree cache write failed", zap.Error(err))
			}
		}
	}

	return skills, nil
}

func (s *CatalogService) invalidateTreeCache(ctx context.Context) {
	if s.Redis != nil {
		s.Redis.Del(ctx, skillTreeCacheKey)
	}
}

type SkillDetail struct {
	Skill           model.Skill      `json:"skill"`
	DescriptionHTML string           `json:"descriptionHtml"`
	Subskills       []model.Subskill `json:"subskills"`
}

func (s *CatalogService) GetSkillDetail(slug string) (*SkillDetail, error) {
	skill, err := s.SkillRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}

	subskills, err := s.SkillRepo.FindSubskills(skill.ID)
	if err != nil {
		return nil, err
	}

	descHTML, err := util.RenderMarkdown(skill.Description)
	if err != nil {
		return nil, err
	}

	return &SkillDetail{
		Skill:           *skill,
		DescriptionHTML: descHTML,
		Subskills:       subskills,
	}, nil
}

// LessonWithProgress 列表页的课程条目，带当前用户的进度（可能为 nil）
type LessonWithProgress struct {
	Lesson   model.Lesson          `json:"lesson"`
	Progress *model.LessonProgress `json:"progress"`
}

// GetSubskillLessons 子技能下的课程列表，逐条标注当前用户的进度
func (s *CatalogService) GetSubskillLessons(skillSlug, subskillSlug string, userID uint) ([]LessonWithProgress, error) {
	subskill, err := s.resolveSubskill(skillSlug, subskillSlug)
	if err != nil {
		return nil, err
	}

	lessons, err := s.LessonRepo.ListBySubskill(subskill.ID)
	if err != nil {
		return nil, err
	}

	lessonIDs := make([]uint, len(lessons))
	for i, l := range lessons {
		lessonIDs[i] = l.ID
	}

	progressMap, err := s.ProgressRepo.MapByLessons(userID, lessonIDs)
	if err != nil {
		return nil, err
	}

	items := make([]LessonWithProgress, len(lessons))
	for i, l := range lessons {
		items[i] = LessonWithProgress{Lesson: l}
		if p, ok := progressMap[l.ID]; ok {
			progress := p
			items[i].Progress = &progress
		}
	}
	return items, nil
}

type LessonDetail struct {
	Lesson          model.Lesson         `json:"lesson"`
	DescriptionHTML string               `json:"descriptionHtml"`
	Progress        model.LessonProgress `json:"progress"`
	PrevLesson      *model.Lesson        `json:"prevLesson"`
	NextLesson      *model.Lesson        `json:"nextLesson"`
}

// GetLessonDetail 课程详情页：进度行不存在则建零值行，并给出同级课程的前后导航
func (s *CatalogService) GetLessonDetail(skillSlug, subskillSlug, lessonSlug string, userID uint) (*LessonDetail, error) {
	subskill, err := s.resolveSubskill(skillSlug, subskillSlug)
	if err != nil {
		return nil, err
	}

	lesson, err := s.LessonRepo.FindBySlug(subskill.ID, lessonSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	progress, err := s.ProgressRepo.FindOrCreate(userID, lesson.ID)
	if err != nil {
		return nil, err
	}

	siblings, err := s.LessonRepo.ListBySubskill(subskill.ID)
	if err != nil {
		return nil, err
	}

	var prev, next *model.Lesson
	for i := range siblings {
		if siblings[i].ID != lesson.ID {
			continue
		}
		if i > 0 {
			prev = &siblings[i-1]
		}
		if i < len(siblings)-1 {
			next = &siblings[i+1]
		}
		break
	}

	descHTML, err := util.RenderMarkdown(lesson.Description)
	if err != nil {
		return nil, err
	}

	return &LessonDetail{
		Lesson:          *lesson,
		DescriptionHTML: descHTML,
		Progress:        *progress,
		PrevLesson:      prev,
		NextLesson:      next,
	}, nil
}

func (s *CatalogService) resolveSubskill(skillSlug, subskillSlug string) (*model.Subskill, error) {
	skill, err := s.SkillRepo.FindBySlug(skillSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}

	subskill, err := s.SkillRepo.FindSubskillBySlug(skill.ID, subskillSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubskillNotFound
		}
		return nil, err
	}
	return subskill, nil
}

// ---- 管理端 CRUD，写操作统一失效技能树缓存 ----

type SkillRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (s *CatalogService) CreateSkill(ctx context.Context, req SkillRequest) (*model.Skill, error) {
	skill := &model.Skill{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.SkillRepo.CreateSkill(skill); err != nil {
		return nil, err
	}
	s.invalidateTreeCache(ctx)
	return skill, nil
}

func (s *CatalogService) UpdateSkill(ctx context.Context, id uint, req SkillRequest) (*model.Skill, error) {
	var skill model.Skill
	if err := s.SkillRepo.DB.First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}

	skill.Title = req.Title
	skill.Slug = req.Slug
	skill.Description = req.Description
	skill.Order = req.Order
	if err := s.SkillRepo.UpdateSkill(&skill); err != nil {
		return nil, err
	}
	s.invalidateTreeCache(ctx)
	return &skill, nil
}

func (s *CatalogService) DeleteSkill(ctx context.Context, id uint) error {
	if err := s.SkillRepo.DeleteSkill(id); err != nil {
		return err
	}
	s.invalidateTreeCache(ctx)
	return nil
}

type SubskillRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	SkillID     uint   `json:"skillId" binding:"required"`
	Order       int    `json:"order"`
}

func (s *CatalogService) CreateSubskill(ctx context.Context, req SubskillRequest) (*model.Subskill, error) {
	subskill := &model.Subskill{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		SkillID:     req.SkillID,
		Order:       req.Order,
	}
	if err := s.SkillRepo.CreateSubskill(subskill); err != nil {
		return nil, err
	}
	s.invalidateTreeCache(ctx)
	return subskill, nil
}

func (s *CatalogService) UpdateSubskill(ctx context.Context, id uint, req SubskillRequest) (*model.Subskill, error) {
	var subskill model.Subskill
	if err := s.SkillRepo.DB.First(&subskill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubskillNotFound
		}
		return nil, err
	}

	subskill.Title = req.Title
	subskill.Slug = req.Slug
	subskill.Description = req.Description
	subskill.SkillID = req.SkillID
	subskill.Order = req.Order
	if err := s.SkillRepo.UpdateSubskill(&subskill); err != nil {
		return nil, err
	}
	s.invalidateTreeCache(ctx)
	return &subskill, nil
}

func (s *CatalogService) DeleteSubskill(ctx context.Context, id uint) error {
	if err := s.SkillRepo.DeleteSubskill(id); err != nil {
		return err
	}
	s.invalidateTreeCache(ctx)
	return nil
}

type LessonRequest struct {
	Title          string `json:"title" binding:"required"`
	Slug           string `json:"slug" binding:"required"`
	Description    string `json:"description"`
	SubskillID     uint   `json:"subskillId" binding:"required"`
	YoutubeVideoID string `json:"youtubeVideoId"`
	Order          int    `json:"order"`
}

func (s *CatalogService) CreateLesson(ctx context.Context, req LessonRequest) (*model.Lesson, error) {
	lesson := &model.Lesson{
		Title:          req.Title,
		Slug:           req.Slug,
		Description:    req.Description,
		SubskillID:     req.SubskillID,
		YoutubeVideoID: req.YoutubeVideoID,
		Order:          req.Order,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	s.invalidateTreeCache(ctx)
	return lesson, nil
}

func (s *CatalogService) UpdateLesson(ctx context.Context, id uint, req LessonRequest) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Slug = req.Slug
	lesson.Description = req.Description
	lesson.SubskillID = req.SubskillID
	lesson.YoutubeVideoID = req.YoutubeVideoID
	lesson.Order = req.Order
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	s.invalidateTreeCache(ctx)
	return lesson, nil
}

func (s *CatalogService) DeleteLesson(ctx context.Context, id uint) error {
	if err := s.LessonRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateTreeCache(ctx)
	return nil
}

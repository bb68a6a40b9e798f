package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"malaka_backend/internal/model"
	"malaka_backend/internal/repository"
	"malaka_backend/internal/util"
	"malaka_backend/pkg/logger"
)

// ContentService 课程视频上传：校验、落盘、探测时长并回填课程
type ContentService struct {
	LessonRepo *repository.LessonRepository
	Storage    *StorageService
}

func NewContentService(lessonRepo *repository.LessonRepository, storage *StorageService) *ContentService {
	return &ContentService{
		LessonRepo: lessonRepo,
		Storage:    storage,
	}
}

type UploadVideoResult struct {
	Lesson   *model.Lesson `json:"lesson"`
	VideoURL string        `json:"videoUrl"`
	Duration int           `json:"durationSeconds"`
}

// UploadLessonVideo 管理端给课程挂视频。
// 先探测元数据拿到真实时长，时长按先到先得规则回填（客户端上报的
// 时长同理），已有时长的课程不会被覆盖。
func (s *ContentService) UploadLessonVideo(ctx context.Context, lessonID uint, fileHeader *multipart.FileHeader) (*UploadVideoResult, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if _, err := util.ValidateMimeType(file, []string{util.MimeVideo, util.MimeOctetStream}); err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	// ffprobe 只认文件路径，先写临时文件
	tmp, err := os.CreateTemp("", "lesson-video-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	info, err := util.GetVideoInfo(tmpPath)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("lessons/%d/%s%s", lesson.ID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	videoURL, err := s.Storage.UploadFile(ctx, filename, tmpPath, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	duration := int(info.Duration)
	if duration > 0 {
		if err := s.LessonRepo.SetDurationIfUnset(lesson.ID, duration); err != nil {
			return nil, err
		}
	}

	lesson.VideoURL = videoURL
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}

	// 缩略图失败不影响上传结果
	thumbPath := tmpPath + ".jpg"
	if err := util.GenerateThumbnail(tmpPath, thumbPath, "00:00:01"); err == nil {
		defer os.Remove(thumbPath)
		thumbName := fmt.Sprintf("lessons/%d/thumbnail.jpg", lesson.ID)
		if _, err := s.Storage.UploadFile(ctx, thumbName, thumbPath, "image/jpeg"); err != nil {
			logger.Log.Warn("thumbnail upload failed", zap.Uint("lessonId", lesson.ID), zap.Error(err))
		}
	} else {
		logger.Log.Warn("thumbnail generation failed", zap.Uint("lessonId", lesson.ID), zap.Error(err))
	}

	return &UploadVideoResult{
		Lesson:   lesson,
		VideoURL: videoURL,
		Duration: duration,
	}, nil
}

package reliability

import (
	"context"
	"time"
)

// BackupJob runs the backup pipeline on a schedule.
type BackupJob struct {
	service       *BackupService
	retentionDays int
}

// NewBackupJob creates a new backup job
func NewBackupJob(service *BackupService, retentionDays int) *BackupJob {
	return &BackupJob{service: service, retentionDays: retentionDays}
}

// Name returns the job name for scheduler logging.
func (j *BackupJob) Name() string {
	return "s3_backup"
}

// Run creates and uploads a backup, then rotates old archives.
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := j.service.CreateAndUploadBackup(ctx); err != nil {
		return err
	}
	return j.service.RotateOldBackups(ctx, j.retentionDays)
}

package job

import (
	"github.com/taskmanager/taskmanager/database"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/util/common"
)

// CheckpointJob folds the sqlite write-ahead log back into the database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")
	if err := database.Checkpoint(); err != nil {
		logger.Warning("database checkpoint failed: ", err)
	}
}

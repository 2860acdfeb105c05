package job

import (
	"regstats/logger"
	"regstats/web/service"
)

// RecordTotalsJob periodically logs the registration totals per role.
type RecordTotalsJob struct {
	userService service.UserService
}

func NewRecordTotalsJob() *RecordTotalsJob {
	return new(RecordTotalsJob)
}

// Here Run is an interface method of the cron Job interface
func (j *RecordTotalsJob) Run() {
	users, err := j.userService.GetAllUsers()
	if err != nil {
		logger.Warning("record totals job err:", err)
		return
	}

	counts := make(map[string]int)
	for _, user := range users {
		counts[user.Role]++
	}
	logger.Infof("registered users: %d, roles: %d", len(users), len(counts))
}

package app

import (
	"appraisals/internal/bank"
	"appraisals/internal/cache"
	"appraisals/internal/repository"
	"appraisals/internal/service"
)

// App holds the wired dependencies handed to the transports.
type App struct {
	Bank           bank.Bank
	QuestionRepo   repository.QuestionRepo
	SessionCache   cache.SessionCache
	AssessService  *service.AssessmentService
	SessionService *service.SessionService
}

package user

import (
	"go-userapi/internal/config"
	"go-userapi/internal/logging"
	"go-userapi/internal/service"
)

// Dependencies user 子包最小依赖集合
type Dependencies struct {
	Users  *service.UserService
	Config *config.Config
	Logger *logging.Logger
}

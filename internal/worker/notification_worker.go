package worker

import (
	"github.com/spec-kit/supply-portal/internal/service"
)

// StartNotificationWorker subscribes the notification service to application events.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

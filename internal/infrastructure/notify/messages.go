package notify

import "fmt"

// SignupMessage 新用户注册通知
func SignupMessage(username string) string {
	return fmt.Sprintf("🎉 New signup: %s", username)
}

// GroupFullMessage 成团通知
func GroupFullMessage(eventName string, membersNeeded int) string {
	return fmt.Sprintf("✅ Group for %s is now FULL (%d members)", eventName, membersNeeded)
}

//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Notify shows a two line toast. Icons are not supported.
func Notify(title, body string, _ Options) error {
	script := fmt.Sprintf(`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; `+
		`$t = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02); `+
		`$x = $t.GetElementsByTagName("text"); `+
		`$x.Item(0).AppendChild($t.CreateTextNode(%s)) > $null; `+
		`$x.Item(1).AppendChild($t.CreateTextNode(%s)) > $null; `+
		`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show([Windows.UI.Notifications.ToastNotification]::new($t));`,
		psQuote(title), psQuote(body), psQuote(AppName))
	return exec.Command("powershell.exe", "-NoProfile", "-Command", script).Run()
}

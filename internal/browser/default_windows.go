//go:build windows

package browser

import (
	"context"

	"golang.org/x/sys/windows/registry"
)

const userChoiceKey = `Software\Microsoft\Windows\Shell\Associations\UrlAssociations\http\UserChoice`

func defaultBrowserID(_ context.Context, _ string) (string, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, userChoiceKey, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer k.Close()

	progID, _, err := k.GetStringValue("ProgId")
	if err != nil {
		return "", err
	}
	return progID, nil
}

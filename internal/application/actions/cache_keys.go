package actions

import "fmt"

func cacheKeyEvent(id string) string {
	return fmt.Sprintf("event:%s", id)
}

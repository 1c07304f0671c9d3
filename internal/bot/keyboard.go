package bot

import (
	"fmt"
	"sort"
	"strconv"

	tele "gopkg.in/telebot.v3"
)

// MaxQualityChoices caps how many resolutions are offered per video.
const MaxQualityChoices = 4

// Callback button identities. Handlers are registered against these uniques;
// the quality button carries the chosen height as its payload.
var (
	btnEnterLink = tele.Btn{Unique: "enter_link"}
	btnQuality   = tele.Btn{Unique: "quality"}
)

// TopHeights returns up to limit distinct resolution heights, highest first.
func TopHeights(formats map[int]string, limit int) []int {
	heights := make([]int, 0, len(formats))
	for h := range formats {
		heights = append(heights, h)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(heights)))

	if len(heights) > limit {
		heights = heights[:limit]
	}
	return heights
}

// qualityMenu renders the quality choices, one button per row.
func qualityMenu(heights []int) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	rows := make([]tele.Row, 0, len(heights))
	for _, h := range heights {
		btn := menu.Data(fmt.Sprintf("%dp", h), btnQuality.Unique, strconv.Itoa(h))
		rows = append(rows, menu.Row(btn))
	}
	menu.Inline(rows...)
	return menu
}

// enterLinkMenu renders the single "enter link" button under the welcome and
// completion messages.
func enterLinkMenu(label string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(menu.Data(label, btnEnterLink.Unique)))
	return menu
}

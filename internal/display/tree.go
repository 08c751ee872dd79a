package display

import (
	"sort"
	"strings"

	"github.com/disiqueira/gotree/v3"
	"github.com/harrison/exchange/internal/models"
)

// RenderTree renders entries as a course / direction / entry tree under
// rootLabel. Courses and directions are sorted; entries keep their order.
func RenderTree(rootLabel string, entries []models.Entry) string {
	tree := gotree.New(rootLabel)

	courses := make(map[string]map[models.Direction][]models.Entry)
	for _, e := range entries {
		if courses[e.CourseID] == nil {
			courses[e.CourseID] = make(map[models.Direction][]models.Entry)
		}
		courses[e.CourseID][e.Direction] = append(courses[e.CourseID][e.Direction], e)
	}

	courseIDs := make([]string, 0, len(courses))
	for id := range courses {
		courseIDs = append(courseIDs, id)
	}
	sort.Strings(courseIDs)

	for _, id := range courseIDs {
		courseNode := tree.Add(id)
		for _, direction := range []models.Direction{models.Inbound, models.Outbound} {
			group := courses[id][direction]
			if len(group) == 0 {
				continue
			}
			dirNode := courseNode.Add(direction.String())
			for _, e := range group {
				dirNode.Add(leafLabel(e))
			}
		}
	}

	return tree.Print()
}

// leafLabel is the entry line without the course, which its parent node shows.
func leafLabel(e models.Entry) string {
	return strings.TrimPrefix(e.Line(), e.CourseID+" ")
}

package export

import (
	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/scheduler"
)

// DateLabelFormat renders event dates as column headers, e.g. "April 06, 2025".
const DateLabelFormat = "January 02, 2006"

// roleColumn is the header of the leading label column.
const roleColumn = "Role"

// Dataset defines tabular export content. Rows are ordered; each row maps
// header name to cell value.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// BuildScheduleDataset lays a schedule out as a grid: one column per event
// date, a PREACHER and a GRAPHICS row from each event's booked preacher,
// then one row per role in schedule display order.
func BuildScheduleDataset(events []*scheduler.Event) Dataset {
	headers := make([]string, 0, len(events)+1)
	headers = append(headers, roleColumn)
	for _, event := range events {
		headers = append(headers, event.Date.Format(DateLabelFormat))
	}

	preacherRow := map[string]string{roleColumn: "PREACHER"}
	graphicsRow := map[string]string{roleColumn: "GRAPHICS"}
	for _, event := range events {
		label := event.Date.Format(DateLabelFormat)
		if preacher := event.Preacher(); preacher != nil {
			preacherRow[label] = preacher.Name
			graphicsRow[label] = preacher.GraphicsSupport
		} else {
			preacherRow[label] = ""
			graphicsRow[label] = ""
		}
	}

	rows := make([]map[string]string, 0, len(model.ScheduleOrder())+2)
	rows = append(rows, preacherRow, graphicsRow)

	for _, role := range model.ScheduleOrder() {
		row := map[string]string{roleColumn: role.String()}
		for _, event := range events {
			row[event.Date.Format(DateLabelFormat)] = event.Roles[role]
		}
		rows = append(rows, row)
	}

	return Dataset{Headers: headers, Rows: rows}
}

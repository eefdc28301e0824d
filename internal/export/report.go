package export

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mcalisterkm/bme-converter/internal/rawdata"
	"github.com/mcalisterkm/bme-converter/internal/udf"
)

// reportMaxPoints caps the per-series payload of a chart; longer captures
// are downsampled by stride.
const reportMaxPoints = 4000

// Report renders decoded rows as an HTML page of line charts, one chart per
// measurement, one series per sensor index, over time since power-on.
type Report struct {
	Title  string
	Labels map[int]rawdata.Label // optional tag annotations for the subtitle
}

type reportMeasure struct {
	name  string
	unit  string
	value func(udf.CanonicalRow) float64
}

var reportMeasures = []reportMeasure{
	{"Temperature", "°C", func(r udf.CanonicalRow) float64 { return float64(r.Temperature) }},
	{"Pressure", "hPa", func(r udf.CanonicalRow) float64 { return float64(r.Pressure) }},
	{"Relative Humidity", "%", func(r udf.CanonicalRow) float64 { return float64(r.RelativeHumidity) }},
	{"Resistance Gassensor", "Ω", func(r udf.CanonicalRow) float64 { return float64(r.GasResistance) }},
}

// Render writes the chart page. Rows may arrive interleaved across sensors;
// they are grouped by sensor index and kept in capture order within a group.
func (rep Report) Render(w io.Writer, rows []udf.CanonicalRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("export: no rows to chart")
	}

	bySensor := make(map[int][]udf.CanonicalRow)
	for _, r := range rows {
		bySensor[int(r.SensorIndex)] = append(bySensor[int(r.SensorIndex)], r)
	}
	sensors := make([]int, 0, len(bySensor))
	for s := range bySensor {
		sensors = append(sensors, s)
	}
	sort.Ints(sensors)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	for _, m := range reportMeasures {
		page.AddCharts(rep.measureChart(m, sensors, bySensor))
	}

	return page.Render(w)
}

func (rep Report) measureChart(m reportMeasure, sensors []int, bySensor map[int][]udf.CanonicalRow) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: rep.Title, Width: "1200px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: m.name, Subtitle: rep.subtitle(m.unit)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time Since PowerOn (ms)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: m.unit}),
	)

	// The x axis follows the first (lowest-index) sensor's timeline; series
	// for other sensors align positionally, which matches the board's
	// round-robin scan ordering.
	var axis []string
	for si, sensor := range sensors {
		rows := bySensor[sensor]
		stride := 1
		if len(rows) > reportMaxPoints {
			stride = int(math.Ceil(float64(len(rows)) / float64(reportMaxPoints)))
		}

		data := make([]opts.LineData, 0, len(rows)/stride+1)
		for i := 0; i < len(rows); i += stride {
			if si == 0 {
				axis = append(axis, strconv.FormatInt(rows[i].TimeSincePowerOn, 10))
			}
			data = append(data, opts.LineData{Value: m.value(rows[i])})
		}
		if si == 0 {
			line.SetXAxis(axis)
		}
		line.AddSeries(fmt.Sprintf("sensor %d", sensor), data)
	}

	return line
}

func (rep Report) subtitle(unit string) string {
	if len(rep.Labels) == 0 {
		return unit
	}
	tags := make([]int, 0, len(rep.Labels))
	for t := range rep.Labels {
		tags = append(tags, t)
	}
	sort.Ints(tags)

	s := unit
	for _, t := range tags {
		s += fmt.Sprintf(" | %d=%s", t, rep.Labels[t].LabelName)
	}
	return s
}

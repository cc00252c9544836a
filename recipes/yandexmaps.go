package recipes

import "github.com/rowgraph/rowgraph/rowgraph"

// YandexMaps builds a graph measuring mean travel speed in km/h by
// weekday and hour, joining a stream of (edge, enter/leave time) trip
// records against a stream of (edge, start/end coordinate) edge records.
func YandexMaps(inputTime, inputLength string, enterTimeCol, leaveTimeCol, edgeIDCol, startCoordCol, endCoordCol, weekdayCol, hourCol, speedCol string) *rowgraph.Graph {
	const distanceColumn = "length"
	coordGraph := rowgraph.FromIter(inputLength).
		Map(rowgraph.CalculateDistance(startCoordCol, endCoordCol, distanceColumn)).
		Sort([]string{edgeIDCol})

	const timeDeltaColumn = "time_delta"
	return rowgraph.FromIter(inputTime).
		Map(rowgraph.WeekDay(enterTimeCol, weekdayCol)).
		Map(rowgraph.Hour(enterTimeCol, hourCol)).
		Map(rowgraph.TimeDelta(enterTimeCol, leaveTimeCol, timeDeltaColumn)).
		Sort([]string{edgeIDCol}).
		Join(rowgraph.NewInnerJoinerDefault(), coordGraph, []string{edgeIDCol}).
		Map(rowgraph.Speed(distanceColumn, timeDeltaColumn, speedCol)).
		Sort([]string{weekdayCol, hourCol}).
		Reduce(rowgraph.Mean(speedCol), []string{weekdayCol, hourCol}).
		Map(rowgraph.Project([]string{weekdayCol, hourCol, speedCol}))
}

// YandexMapsFromFile is YandexMaps reading both inputs from files.
func YandexMapsFromFile(pathTime, pathLength string, parser func(string) (rowgraph.Row, error), enterTimeCol, leaveTimeCol, edgeIDCol, startCoordCol, endCoordCol, weekdayCol, hourCol, speedCol string) *rowgraph.Graph {
	const distanceColumn = "length"
	coordGraph := rowgraph.FromFile(pathLength, parser).
		Map(rowgraph.CalculateDistance(startCoordCol, endCoordCol, distanceColumn)).
		Map(rowgraph.Project([]string{edgeIDCol, distanceColumn})).
		Sort([]string{edgeIDCol})

	const timeDeltaColumn = "time_delta"
	return rowgraph.FromFile(pathTime, parser).
		Map(rowgraph.WeekDay(enterTimeCol, weekdayCol)).
		Map(rowgraph.Hour(enterTimeCol, hourCol)).
		Map(rowgraph.TimeDelta(enterTimeCol, leaveTimeCol, timeDeltaColumn)).
		Map(rowgraph.Project([]string{edgeIDCol, timeDeltaColumn, weekdayCol, hourCol})).
		Sort([]string{edgeIDCol}).
		Join(rowgraph.NewInnerJoinerDefault(), coordGraph, []string{edgeIDCol}).
		Map(rowgraph.Speed(distanceColumn, timeDeltaColumn, speedCol)).
		Sort([]string{weekdayCol, hourCol}).
		Reduce(rowgraph.Mean(speedCol), []string{weekdayCol, hourCol}).
		Map(rowgraph.Project([]string{weekdayCol, hourCol, speedCol}))
}

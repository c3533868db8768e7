package views

import (
	"graphview/ui/tui/state"
)

func RenderTabs(s state.AppState, width int, spinnerView string) string {
	return TabsView{}.Render(s, ViewProps{
		Width:       width,
		SpinnerView: spinnerView,
	})
}

func RenderGraph(s state.AppState, spinnerView, graphView string, width int) string {
	return GraphView{}.Render(s, ViewProps{
		Width:       width,
		SpinnerView: spinnerView,
		GraphView:   graphView,
	})
}

func RenderSchema(s state.AppState, cursor int, animCursor float64, mouseY int) string {
	return SchemaView{}.Render(s, ViewProps{
		LegendCursor: cursor,
		AnimCursor:   animCursor,
		MouseY:       mouseY,
	})
}

func RenderConfig(s state.AppState, width, height, scrollY int) string {
	return ConfigView{}.Render(s, ViewProps{
		Width:   width,
		Height:  height,
		ScrollY: scrollY,
	})
}

func RenderConsole(s state.AppState, width, height, scrollY int) string {
	return ConsoleView{}.Render(s, ViewProps{
		Width:   width,
		Height:  height,
		ScrollY: scrollY,
	})
}

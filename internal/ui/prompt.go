package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"OverlayBoard/internal/surface"
)

// TextPrompt asks for the text tool's annotation in a modal form. Dismissing
// the form answers with ok false.
func TextPrompt(win fyne.Window) surface.Prompter {
	return surface.PromptFunc(func(answer func(string, bool)) {
		entry := widget.NewEntry()
		entry.SetPlaceHolder("Annotation")
		form := dialog.NewForm("Enter text", "Add", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Text", entry)},
			func(ok bool) { answer(entry.Text, ok) }, win)
		entry.OnSubmitted = func(string) { form.Submit() }
		form.Resize(fyne.NewSize(320, 0))
		form.Show()
		win.Canvas().Focus(entry)
	})
}

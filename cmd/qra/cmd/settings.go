package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/iiroan/qra/internal/config"
	"github.com/iiroan/qra/internal/icon"
	"github.com/iiroan/qra/internal/overlay"
	"github.com/iiroan/qra/internal/style"
	"github.com/iiroan/qra/internal/ui"
)

func settingsMenuItems() []ui.MenuItem {
	cfg := app.plugin.Config()
	kind := icon.Resolve(cfg.Icon)
	return []ui.MenuItem{
		{ID: "general", TitleText: "General", Details: "Enable the overlay and match the host send button colors"},
		{ID: "icon", TitleText: "Icon", Details: "Built-in glyph or custom SVG, image URL or base64 data", Glyph: icon.ButtonVisual(kind, icon.HostColors{}, false).Glyph},
		{ID: "styles", TitleText: "Menu Styles", Details: "Colors and opacity of the reply menu surfaces"},
		{ID: "upload", TitleText: "Upload Icon", Details: "Pick an image file and store it as the custom icon"},
		{ID: "paste", TitleText: "Paste Icon", Details: "Use the clipboard text as the custom icon"},
		{ID: "preview", TitleText: "Preview Icon", Details: "Show how the custom icon resolves"},
		{ID: "menu", TitleText: "Toggle Menu", Details: "Open or close the reply menu in the host preview"},
		{ID: "reset", TitleText: "Reset Styles", Details: "Restore the default menu colors"},
		{ID: "usage", TitleText: "Usage", Details: "How the overlay works"},
		{ID: "exit", TitleText: "Exit", Details: "Leave settings"},
	}
}

func sectionPreview(id string) string {
	cfg := app.plugin.Config()
	switch id {
	case "general":
		return ui.KeyValue("enabled", strconv.FormatBool(cfg.Enabled), 8) + "\n" +
			ui.KeyValue("match", strconv.FormatBool(cfg.MatchHostColors), 8)
	case "icon", "preview":
		d := icon.Resolve(cfg.Icon)
		return ui.KeyValue("kind", cfg.Icon.Kind.Label(), 8) + "\n" +
			ui.KeyValue("resolves", d.Variant.String(), 8)
	case "styles", "reset":
		var lines []string
		for _, d := range style.Project(cfg.MenuStyles) {
			lines = append(lines, ui.Swatch(d.Value)+" "+ui.HintStyle.Render(string(d.Surface)))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func runSettingsChoice(choice string) error {
	switch choice {
	case "general":
		return editGeneral()
	case "icon":
		return editIcon()
	case "styles":
		return editStyles()
	case "upload":
		return pickAndUpload()
	case "paste":
		return runPaste()
	case "preview":
		return runPreview()
	case "menu":
		app.plugin.ToggleMenu()
		printOverlay()
		return nil
	case "reset":
		return confirmResetStyles()
	case "usage":
		printUsage()
		return nil
	default:
		return nil
	}
}

func editGeneral() error {
	cfg := app.plugin.Config()
	enabled := cfg.Enabled
	match := cfg.MatchHostColors

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable Overlay").
				Description("Replace the quick-reply bar with the overlay button").
				Affirmative("Enabled").
				Negative("Disabled").
				Value(&enabled),
			huh.NewConfirm().
				Title("Match Send Button Colors").
				Description("Copy the host send button's text color and style").
				Value(&match),
		),
	).WithTheme(ui.HuhTheme()).WithKeyMap(toggleFormKeyMap())

	if err := form.Run(); err != nil {
		return err
	}
	return commit(overlay.ControlValues{Enabled: &enabled, MatchHostColors: &match})
}

func editIcon() error {
	cfg := app.plugin.Config()
	kind := string(cfg.Icon.Kind)
	if _, ok := icon.ParseKind(kind); !ok {
		kind = string(icon.KindRocket)
	}
	content := cfg.Icon.CustomContent

	kindOptions := make([]huh.Option[string], 0, len(icon.Kinds()))
	for _, k := range icon.Kinds() {
		label := k.Label()
		if k.Builtin() {
			label = icon.GlyphRune(icon.GlyphID(k)) + "  " + label
		}
		kindOptions = append(kindOptions, huh.NewOption(label, string(k)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Icon Type").
				Options(kindOptions...).
				Value(&kind),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Custom Icon").
				Description("SVG markup, image URL, data URI or base64 data").
				Placeholder("<svg ...>...</svg> or https://example.com/icon.png").
				Value(&content).
				Validate(func(value string) error {
					d := icon.Resolve(icon.Spec{Kind: icon.KindCustom, CustomContent: value})
					if d.Variant == icon.Unresolvable && d.Reason == icon.ReasonUnrecognized {
						return fmt.Errorf("unsupported format, enter SVG, an image URL or base64 data")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return kind != string(icon.KindCustom) }),
	).WithTheme(ui.HuhTheme()).WithKeyMap(textFormKeyMap())

	if err := form.Run(); err != nil {
		return err
	}
	return commit(overlay.ControlValues{IconKind: &kind, CustomContent: &content})
}

func editStyles() error {
	surfaceOptions := make([]huh.Option[string], 0, len(style.Surfaces()))
	for _, s := range style.Surfaces() {
		surfaceOptions = append(surfaceOptions, huh.NewOption(surfaceLabel(s), string(s)))
	}

	var surfaceName string
	if err := huh.NewSelect[string]().
		Title("Surface").
		Description("Which part of the reply menu to style").
		Options(surfaceOptions...).
		Value(&surfaceName).
		WithTheme(ui.HuhTheme()).
		Run(); err != nil {
		return err
	}

	surface, err := style.ParseSurface(surfaceName)
	if err != nil {
		return err
	}
	current := app.plugin.Config().MenuStyles.Resolved().Get(surface)

	values := make(map[style.Property]*string)
	var fields []huh.Field
	for _, p := range surface.Properties() {
		v, _ := current.Value(p)
		value := v
		values[p] = &value

		if p == style.PropOpacity {
			fields = append(fields, huh.NewSelect[string]().
				Title(propertyLabel(p)).
				Options(opacityOptions()...).
				Value(values[p]))
			continue
		}
		fields = append(fields, huh.NewInput().
			Title(propertyLabel(p)).
			Description("Hex color, #RRGGBB").
			Value(values[p]).
			Validate(func(value string) error {
				if !style.ValidColor(strings.TrimSpace(value)) {
					return fmt.Errorf("enter a color like #3C3C3C")
				}
				return nil
			}))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(ui.HuhTheme()).WithKeyMap(textFormKeyMap())
	if err := form.Run(); err != nil {
		return err
	}

	changes := make(map[string]any, len(values))
	for p, v := range values {
		changes[config.StyleField(surface, p)] = strings.TrimSpace(*v)
	}
	return commit(overlay.ControlValues{Styles: changes})
}

func opacityOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, 11)
	for i := 0; i <= 10; i++ {
		v := strconv.FormatFloat(float64(i)/10, 'f', -1, 64)
		options = append(options, huh.NewOption(fmt.Sprintf("%d%%", i*10), v))
	}
	return options
}

func surfaceLabel(s style.Surface) string {
	switch s {
	case style.SurfaceMenuItem:
		return "Menu items"
	case style.SurfaceTitle:
		return "Menu title"
	case style.SurfaceEmptyHint:
		return "Empty hint"
	case style.SurfaceMenuPanel:
		return "Menu panel"
	}
	return string(s)
}

func propertyLabel(p style.Property) string {
	switch p {
	case style.PropBackground:
		return "Background"
	case style.PropColor:
		return "Text Color"
	case style.PropOpacity:
		return "Opacity"
	case style.PropBorder:
		return "Border Color"
	}
	return string(p)
}

func confirmResetStyles() error {
	confirm := false
	if err := huh.NewConfirm().
		Title("Reset menu styles?").
		Description("Every surface returns to its default colors").
		Value(&confirm).
		WithTheme(ui.HuhTheme()).
		Run(); err != nil {
		return err
	}
	if !confirm {
		return nil
	}
	app.plugin.ResetStyles()
	printOverlay()
	return nil
}

func pickAndUpload() error {
	var path string
	if err := huh.NewFilePicker().
		Title("Icon File").
		Description("PNG, JPEG, GIF, SVG or WebP").
		AllowedTypes([]string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"}).
		Value(&path).
		WithTheme(ui.HuhTheme()).
		Run(); err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	return runUpload(path)
}

// commit sends control values through the plugin and prints the result.
func commit(values overlay.ControlValues) error {
	ok := app.plugin.SaveSettings(values)
	printOverlay()
	if !ok {
		return errors.New("settings were not fully applied")
	}
	return nil
}

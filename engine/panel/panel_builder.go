package panel

import "log/slog"

// PanelBuilderOption is a functional option for configuring a Panel via NewPanel.
type PanelBuilderOption func(*panelImpl)

// WithTitle is an option builder that sets the panel heading.
//
// Parameters:
//   - title: the heading text
//
// Returns:
//   - PanelBuilderOption: a function that applies the title option to a panel
func WithTitle(title string) PanelBuilderOption {
	return func(p *panelImpl) {
		p.title = title
	}
}

// WithLogger is an option builder that sets the logger used for skipped bindings.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - PanelBuilderOption: a function that applies the logger option to a panel
func WithLogger(logger *slog.Logger) PanelBuilderOption {
	return func(p *panelImpl) {
		if logger != nil {
			p.logger = logger
		}
	}
}

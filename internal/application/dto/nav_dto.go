package dto

// NavEntryResponse entrada visible del menú.
type NavEntryResponse struct {
	Page  string `json:"page"`
	Title string `json:"title"`
}

// MenuResponse menú filtrado por rol y página activa ("" antes de la primera navegación).
type MenuResponse struct {
	Entries []NavEntryResponse `json:"entries"`
	Active  string             `json:"active"`
}

// NavigateResponse resultado de una navegación. Si Redirected es true, Page es el dashboard
// y Warning explica el motivo. Data son los datos de la página resultante.
type NavigateResponse struct {
	Page       string `json:"page"`
	Requested  string `json:"requested"`
	Redirected bool   `json:"redirected"`
	Warning    string `json:"warning,omitempty"`
	Data       any    `json:"data,omitempty"`
}

package dto

// AlertResponse aviso para el tendero (stock bajo, margen bajo, pérdida).
type AlertResponse struct {
	Type        string  `json:"type"`
	Severity    string  `json:"severity"`
	Message     string  `json:"message"`
	InventoryID *string `json:"inventory_id,omitempty"`
}

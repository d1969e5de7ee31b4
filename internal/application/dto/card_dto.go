package dto

// ContactCard datos de la tarjeta de contacto imprimible (PDF con QR).
type ContactCard struct {
	Title          string   // nombre de la persona o empresa
	Subtitle       string   // cargo, titular o nombre de la empresa
	Lines          []string // contacto: teléfono, email, web
	URL            string   // destino del QR
	PrimaryColor   string   // #RRGGBB
	SecondaryColor string
}

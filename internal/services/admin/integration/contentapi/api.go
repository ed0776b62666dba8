package contentapi

// Collection paths exposed by the content API.
const (
	PathServices   = "/services"
	PathAboutUs    = "/aboutus"
	PathWhyUs      = "/whyus"
	PathClients    = "/clients"
	PathCategories = "/categories"
	PathProjects   = "/projects"
	PathReviews    = "/reviews"
	PathContactUs  = "/contactus"
	PathNews       = "/news"
)

// API groups the typed operations of every resource.
type API struct {
	Services   *Resource[Service]
	AboutUs    *Singleton[AboutUs]
	WhyUs      *Resource[WhyChooseUs]
	Clients    *Resource[ClientLogo]
	Categories *Resource[Category]
	Projects   *Resource[Project]
	Reviews    *Resource[Review]
	Contact    ReadDeleter[ContactMessage]
	News       *Resource[News]
}

// NewAPI binds every resource to client.
func NewAPI(client *Client) *API {
	return &API{
		Services:   NewResource[Service](client, PathServices),
		AboutUs:    NewSingleton[AboutUs](client, PathAboutUs),
		WhyUs:      NewResource[WhyChooseUs](client, PathWhyUs),
		Clients:    NewResource[ClientLogo](client, PathClients),
		Categories: NewResource[Category](client, PathCategories),
		Projects:   NewResource[Project](client, PathProjects),
		Reviews:    NewResource[Review](client, PathReviews),
		Contact:    NewResource[ContactMessage](client, PathContactUs),
		News:       NewResource[News](client, PathNews),
	}
}

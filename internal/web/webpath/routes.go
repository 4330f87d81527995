package webpath

const (
	Home = "/"

	Ratings    = "/ratings"
	GamesList  = "/games-list"
	GetPlayers = "/players/:id"
	Anomalies  = "/report"
)

func Path() map[string]string {
	return map[string]string{
		"Home":    Home,
		"Ratings": Ratings,
		"Games":   GamesList,
		"Report":  Anomalies,
	}
}

package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/cluequiz/internal/content"
	"github.com/playperu/cluequiz/internal/handler/health"
)

const tablePath = "/api/tables/{table}"

type tableParams struct {
	Table string `path:"table" description:"Table slug: lowercase letters, digits and dashes."`
}

type clueParams struct {
	tableParams
	Index int `path:"index" description:"Zero-based clue index."`
}

type teamParams struct {
	tableParams
	TeamID string `path:"teamID"`
}

type categoryParams struct {
	tableParams
	Category string `path:"category"`
}

type startGameInput struct {
	tableParams
	StartGameRequest
}

type selectCategoryInput struct {
	tableParams
	SelectCategoryRequest
}

type guessInput struct {
	tableParams
	GuessRequest
}

type creditInput struct {
	tableParams
	CreditRequest
}

type addTeamInput struct {
	tableParams
	AddTeamRequest
}

type adjustScoreInput struct {
	teamParams
	AdjustScoreRequest
}

// tableOp registers a table operation answering with StateView or out.
func tableOp(r *openapi3.Reflector, method, path, summary, description string, in, out any, status int, errs ...int) {
	op, _ := r.NewOperationContext(method, tablePath+path)
	op.SetSummary(summary)
	op.SetDescription(description)
	op.SetTags("tables")
	op.AddReqStructure(in)
	op.AddRespStructure(out, openapi.WithHTTPStatus(status))
	for _, code := range errs {
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(code))
	}
	_ = r.AddOperation(op)
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "ClueQuiz API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Game table API for the ClueQuiz team trivia game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Reports whether storage and content are usable.")
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/categories
	getCategories, _ := r.NewOperationContext(http.MethodGet, "/api/categories")
	getCategories.SetSummary("List categories")
	getCategories.SetDescription("Returns the category catalog and whether content is available for each.")
	getCategories.AddRespStructure([]content.CategoryInfo{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getCategories)

	const (
		ok       = http.StatusOK
		created  = http.StatusCreated
		bad      = http.StatusBadRequest
		notFound = http.StatusNotFound
		conflict = http.StatusConflict
		gateway  = http.StatusBadGateway
	)

	tableOp(r, http.MethodGet, "/state", "Get table state",
		"Returns the session. Hidden clue values and the unrevealed answer are blank.",
		tableParams{}, StateView{}, ok, notFound)

	// GET /events
	getEvents, _ := r.NewOperationContext(http.MethodGet, tablePath+"/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events; every message is an EventMessage, starting with a snapshot.")
	getEvents.SetTags("tables")
	getEvents.AddReqStructure(tableParams{})
	getEvents.AddRespStructure(EventMessage{}, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /ws
	getWS, _ := r.NewOperationContext(http.MethodGet, tablePath+"/ws")
	getWS.SetSummary("WebSocket event stream")
	getWS.SetDescription("Upgrades to a WebSocket carrying the same EventMessage payloads as the SSE stream.")
	getWS.SetTags("tables")
	getWS.AddReqStructure(tableParams{})
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// GET /qr.png
	getQR, _ := r.NewOperationContext(http.MethodGet, tablePath+"/qr.png")
	getQR.SetSummary("Table QR code")
	getQR.SetDescription("PNG QR code linking to the table page.")
	getQR.SetTags("tables")
	getQR.AddReqStructure(tableParams{})
	getQR.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK), openapi.WithContentType("image/png"))
	_ = r.AddOperation(getQR)

	tableOp(r, http.MethodPost, "/game", "Start game",
		"Starts a new game with 2-6 teams. Scores reset and the first team takes the turn. winningPoints defaults to 200.",
		startGameInput{}, StateView{}, created, bad, notFound)
	tableOp(r, http.MethodDelete, "/game", "Reset table",
		"Discards the session and its snapshot.",
		tableParams{}, StateView{}, ok, notFound)
	tableOp(r, http.MethodPost, "/game/end", "End game",
		"Ends the game manually. The highest score wins; ties go to the earlier seat.",
		tableParams{}, StateView{}, ok, notFound, conflict)

	tableOp(r, http.MethodPost, "/category", "Select category",
		"Picks a category for the active team and puts a fresh item in play. Each category allows 3 picks per game.",
		selectCategoryInput{}, StateView{}, ok, bad, notFound, conflict, gateway)
	tableOp(r, http.MethodDelete, "/categories/{category}/used", "Forget served items",
		"Lets items already served for a category be drawn again.",
		categoryParams{}, StateView{}, ok, notFound, conflict)

	tableOp(r, http.MethodPost, "/round/clues/{index}", "Reveal clue",
		"Reveals one clue of the item in play. Each hidden clue is worth 10 points.",
		clueParams{}, StateView{}, ok, bad, notFound, conflict)
	tableOp(r, http.MethodPost, "/round/answer", "Reveal answer",
		"Shows the answer without awarding points.",
		tableParams{}, StateView{}, ok, notFound, conflict)
	tableOp(r, http.MethodPost, "/round/guess", "Submit guess",
		"Checks a typed guess, ignoring case, punctuation and spacing. A correct guess reveals the answer.",
		guessInput{}, GuessResponse{}, ok, bad, notFound, conflict)
	tableOp(r, http.MethodPost, "/round/credit", "Close round",
		"Credits the team that guessed right, or nobody when teamId is empty, and passes the turn.",
		creditInput{}, CreditResponse{}, ok, bad, notFound, conflict)
	tableOp(r, http.MethodPost, "/round/back", "Back to categories",
		"Abandons the round without points; the turn stays with the active team.",
		tableParams{}, StateView{}, ok, notFound, conflict)

	tableOp(r, http.MethodPost, "/teams", "Add team",
		"Adds a team at the end of the seating order. At most 6 teams.",
		addTeamInput{}, AddTeamResponse{}, created, bad, notFound, conflict)
	tableOp(r, http.MethodDelete, "/teams/{teamID}", "Remove team",
		"Removes a team. If it held the turn, the next seat takes it.",
		teamParams{}, StateView{}, ok, notFound, conflict)
	tableOp(r, http.MethodPost, "/teams/{teamID}/active", "Set active team",
		"Hands the turn to a team.",
		teamParams{}, StateView{}, ok, notFound, conflict)
	tableOp(r, http.MethodPost, "/teams/{teamID}/score", "Adjust score",
		"Applies a manual score correction, never below zero.",
		adjustScoreInput{}, StateView{}, ok, bad, notFound, conflict)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

package agent

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/folioctl/folio"
	"github.com/folioctl/folio/quote"
	"github.com/folioctl/folio/renderer"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his portfolio: how far his holdings
			drifted from his targets, what prices moved, and what to buy or sell to rebalance.

			Devise a plan of questions to each expert and come up with the best response to the user's request.

			The user will assume you know his symbols and class targets, check the portfolio first.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader builds the market news expert, grounded on Google Search.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		very well aware of all the financial products and institutions,
		and of the latest news about companies, funds and crypto.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in trading. You can search and find anything related to
			financial institutions, companies, markets, funds and crypto. You leverage
			Google Search to ground your assertions in solid truth, and you know how to
			relate the latest news to the user's request.
				`}}},
		},
	}
}

// NewAdvisor builds the portfolio expert, wired to the given journal file.
func NewAdvisor(bookFile string) *Expert {
	lib := []Function{dashboardFunc(bookFile), quoteFunc()}

	return &Expert{
		Name: "Advisor",
		Description: `This is the Advisor. He reads the user's portfolio journal and
		computes the rebalancing dashboard: class targets, deviations, alerts, and
		buy/sell suggestions. He can also fetch a live consensus price for a symbol.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an advisor in charge of the user's portfolio journal.
				You know how to use the Tools to extract relevant information:
				  - the rebalancing dashboard, with every class and holding against its target
				  - a live consensus price for any symbol
				You are part of a team of experts, yours is everything in the user's portfolio.
				Pardon their approximative language and figure out which holding they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func dashboardFunc(bookFile string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Dashboard",
			Description: `Dashboard reports the whole portfolio against its plan: total and
			allocated value, every class with its target value and cash to deploy, and
			every holding with its quantity, price, deviation from target, status, and
			units to buy or sell.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted rebalancing report of the portfolio.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			f, err := os.Open(bookFile)
			if err != nil {
				return errResponse(id, "Dashboard", fmt.Errorf("could not open journal: %w", err))
			}
			defer f.Close()
			book, err := folio.DecodeBook(f)
			if err != nil {
				return errResponse(id, "Dashboard", fmt.Errorf("could not decode journal: %w", err))
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Dashboard",
				Response: map[string]any{
					"output": renderer.RenderDashboard(folio.NewDashboard(book)),
				},
			}
		},
	}
}

func quoteFunc() *Func {
	service := quote.NewService(nil)
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Quote",
			Description: `Quote fetches the live consensus price of a symbol across market
			data providers. Symbols are US tickers (AAPL), B3 tickers (PETR4.SA) or
			crypto pairs (BTC-USD).`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol": {
						Type:        genai.TypeString,
						Description: "The symbol to price.",
					},
				},
				Required: []string{"symbol"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted consensus price with its per-source candidates.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			raw, ok := args["symbol"].(string)
			if !ok {
				return errResponse(id, "Quote", fmt.Errorf("argument 'symbol' is not a string but %T", args["symbol"]))
			}
			symbol, err := folio.ParseSymbol(raw)
			if err != nil {
				return errResponse(id, "Quote", err)
			}
			c, err := service.Consensus(ctx, symbol)
			if err != nil {
				return errResponse(id, "Quote", err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Quote",
				Response: map[string]any{
					"output": renderer.ConsensusMarkdown(c),
				},
			}
		},
	}
}

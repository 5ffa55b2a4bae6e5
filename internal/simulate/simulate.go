// Package simulate drives synthetic customer traffic through the chat
// manager to produce cost projections from realistic query mixes.
package simulate

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/liralabs/lirabot/internal/catalog"
	"github.com/liralabs/lirabot/internal/chat"
	"github.com/liralabs/lirabot/internal/pricing"
)

var queryTemplates = []string{
	"What is the price of %[1]s?",
	"Does %[1]s contain %[2]s?",
	"I have %[3]s skin, is %[1]s suitable for me?",
	"What are the main ingredients in %[1]s?",
	"Can you tell me about the features of %[1]s?",
	"How do I use %[1]s?",
	"Is %[1]s good for %[3]s skin?",
	"Do you have any recommendations for %[3]s skin?",
	"I'm looking for something from %[4]s.",
	"Is %[1]s waterproof?",
}

var skinTypes = []string{"dry", "oily", "sensitive", "normal", "combination", "mature", "acne-prone"}

var ingredients = []string{"parabens", "fragrance", "alcohol", "vitamin C", "retinol", "aloe vera"}

// Options controls the shape of a simulation run.
type Options struct {
	Customers  int
	MinQueries int
	MaxQueries int
	VoiceRatio float64
	Backend    string
	Seed       int64
}

// DefaultOptions mirrors the standard 50-customer text+voice run.
func DefaultOptions() Options {
	return Options{
		Customers:  50,
		MinQueries: 4,
		MaxQueries: 5,
		VoiceRatio: 0.5,
		Backend:    "groq",
	}
}

// Record captures a single simulated interaction.
type Record struct {
	CustomerID   string
	Mode         string
	Query        string
	Response     string
	AICost       float64
	STTCost      float64
	TTSCost      float64
	TotalCost    float64
	InputTokens  int64
	OutputTokens int64
	AudioSeconds float64
}

// Summary aggregates a simulation run for the final cost analysis.
type Summary struct {
	TotalQueries int
	VoiceQueries int
	InputTokens  int64
	OutputTokens int64
	AICost       float64
	STTCost      float64
	TTSCost      float64
	GrandTotal   float64
}

// Runner generates traffic against a chat manager and prices the
// voice legs of each interaction.
type Runner struct {
	mgr      *chat.Manager
	calc     *pricing.Calculator
	products []catalog.Product
	rng      *rand.Rand
	log      *zap.Logger
}

func NewRunner(mgr *chat.Manager, calc *pricing.Calculator, products []catalog.Product, seed int64, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		mgr:      mgr,
		calc:     calc,
		products: products,
		rng:      rand.New(rand.NewSource(seed)),
		log:      log,
	}
}

// Run simulates opts.Customers customers, each issuing between
// MinQueries and MaxQueries queries. A VoiceRatio share of customers
// interact by voice, which adds transcription cost for a 5 to 15
// second utterance and synthesis cost for the response text.
func (r *Runner) Run(ctx context.Context, opts Options) ([]Record, Summary, error) {
	if len(r.products) == 0 {
		return nil, Summary{}, fmt.Errorf("simulate: no products loaded")
	}
	if opts.MinQueries <= 0 || opts.MaxQueries < opts.MinQueries {
		return nil, Summary{}, fmt.Errorf("simulate: bad query range %d..%d", opts.MinQueries, opts.MaxQueries)
	}

	var (
		records []Record
		sum     Summary
	)

	for c := 1; c <= opts.Customers; c++ {
		if err := ctx.Err(); err != nil {
			return records, sum, err
		}

		customerID := fmt.Sprintf("sim_user_%d", c)
		numQueries := opts.MinQueries + r.rng.Intn(opts.MaxQueries-opts.MinQueries+1)
		mode := "text"
		if r.rng.Float64() < opts.VoiceRatio {
			mode = "voice"
		}

		for q := 0; q < numQueries; q++ {
			query := r.randomQuery()
			sum.TotalQueries++

			var sttCost, audioSeconds float64
			if mode == "voice" {
				sum.VoiceQueries++
				audioSeconds = 5 + r.rng.Float64()*10
				sttCost, _ = r.calc.VoiceCosts(audioSeconds, 0)
				sum.STTCost += sttCost
			}

			response, aiCost := r.mgr.ProcessQuery(ctx, customerID, query, opts.Backend, "en")

			var inTok, outTok int64
			if log := r.mgr.SessionLog(customerID); len(log) > 0 {
				last := log[len(log)-1]
				inTok, outTok = last.InputTokens, last.OutputTokens
			}
			sum.InputTokens += inTok
			sum.OutputTokens += outTok
			sum.AICost += aiCost

			var ttsCost float64
			if mode == "voice" {
				_, ttsCost = r.calc.VoiceCosts(0, len(response))
				sum.TTSCost += ttsCost
			}

			records = append(records, Record{
				CustomerID:   customerID,
				Mode:         mode,
				Query:        query,
				Response:     response,
				AICost:       aiCost,
				STTCost:      sttCost,
				TTSCost:      ttsCost,
				TotalCost:    aiCost + sttCost + ttsCost,
				InputTokens:  inTok,
				OutputTokens: outTok,
				AudioSeconds: audioSeconds,
			})
		}

		r.log.Debug("customer simulated",
			zap.String("customer", customerID),
			zap.String("mode", mode),
			zap.Int("queries", numQueries))
	}

	sum.GrandTotal = sum.AICost + sum.STTCost + sum.TTSCost
	return records, sum, nil
}

func (r *Runner) randomQuery() string {
	tmpl := queryTemplates[r.rng.Intn(len(queryTemplates))]
	p := r.products[r.rng.Intn(len(r.products))]
	return fmt.Sprintf(tmpl,
		p.Name,
		ingredients[r.rng.Intn(len(ingredients))],
		skinTypes[r.rng.Intn(len(skinTypes))],
		p.Brand,
	)
}

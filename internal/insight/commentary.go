package insight

import (
	"context"
	"fmt"
	"strings"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"frontierlab/internal/frontier"
)

// Commentator turns a computed frontier into a short written analysis. It
// only ever reads the finished dataset; the numerical pipeline stays fully
// deterministic with or without it.
type Commentator struct {
	cli oa.Client
}

func NewCommentator(apiKey string) *Commentator {
	client := oa.NewClient(option.WithAPIKey(apiKey))
	return &Commentator{cli: client}
}

func (c *Commentator) Comment(ctx context.Context, d *frontier.Dataset) (string, error) {
	systemPrompt := `You are a professional financial analyst commenting on a mean-variance efficient frontier computed from historical daily returns.

Your response must follow this exact structure:

**Portfolio Universe:**
[One sentence on the assets and their standalone risk/return profiles]

**Frontier Shape:**
[Describe the low-volatility end, the high-return end, and how much diversification helps]

**Allocation Takeaways:**
[Which asset dominates the low-risk allocations, which the high-return ones]

**Caveats:**
[Note that this is backward-looking sample statistics, not a forecast]

Guidelines:
- Use the numbers you are given; do not invent data
- Keep it under 250 words
- Use clear, concise explanations`

	resp, err := c.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: "gpt-4",
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage(systemPrompt),
			oa.UserMessage("Comment on this efficient frontier:\n" + describe(d)),
		},
		MaxTokens: oa.Int(600),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// describe compacts the dataset into the few numbers the model needs.
func describe(d *frontier.Dataset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Assets: %s\n", strings.Join(d.Tickers, ", "))
	for _, tk := range d.Tickers {
		fmt.Fprintf(&b, "%s: annualized return %.2f%%, annualized volatility %.2f%%\n",
			tk, d.AnnualizedReturns[tk]*100, d.AnnualizedVolatility[tk]*100)
	}
	fmt.Fprintf(&b, "Sampled portfolios: %d, on frontier: %d\n", len(d.Weights), len(d.FrontierIndices))
	if len(d.FrontierIndices) > 0 {
		low := d.FrontierIndices[0]
		high := d.FrontierIndices[len(d.FrontierIndices)-1]
		fmt.Fprintf(&b, "Min-volatility portfolio: weights %v, return %.2f%%, volatility %.2f%%\n",
			d.Weights[low], d.Portfolio.Returns[low]*100, d.Portfolio.Volatility[low]*100)
		fmt.Fprintf(&b, "Max-return frontier portfolio: weights %v, return %.2f%%, volatility %.2f%%\n",
			d.Weights[high], d.Portfolio.Returns[high]*100, d.Portfolio.Volatility[high]*100)
	}
	return b.String()
}

package ai

import (
	"context"
	"strings"
)

// ProviderTemplate names the offline rewriter in results and logs.
const ProviderTemplate = "template"

const fallbackRoleKey = "frontend"

var toneTemplates = map[string]map[Tone]string{
	"frontend": {
		ToneProfessional:  "Developed and deployed a dynamic React-based UI that improved user engagement and reduced initial page load time by 35% through performance optimization.",
		ToneConfident:     "Architected a modern frontend system, delivering a high-performance user interface that boosted conversion metrics and set a new bar for application speed.",
		ToneExecutive:     "Led the technical direction of the primary customer-facing platform, using React and Redux to ensure scalability and 99.9% uptime.",
		ToneFreshGraduate: "Assisted in building a functional user interface with React and contributed performance enhancements while gaining experience with production code.",
	},
	"data": {
		ToneProfessional:  "Built and maintained Python data pipelines with Pandas and NumPy, cutting report preparation time by 40% and improving data quality checks.",
		ToneConfident:     "Designed and shipped TensorFlow models to production on AWS, raising forecast accuracy by 18% and owning the full model deployment lifecycle.",
		ToneExecutive:     "Set the analytics and machine learning roadmap, aligning model deployment on AWS with business goals and scaling the data platform across teams.",
		ToneFreshGraduate: "Supported data preparation and model experiments in Python with PyTorch, learning how data pipelines move from notebook to production.",
	},
	"backend": {
		ToneProfessional:  "Developed Node.js and Express microservices backed by PostgreSQL, reducing average API latency by 30% and improving auth security.",
		ToneConfident:     "Architected a scalable microservices backend with PostgreSQL and MongoDB, handling 5x traffic growth without downtime.",
		ToneExecutive:     "Owned the backend platform strategy, driving security, scalability and reliability standards across all customer-facing services.",
		ToneFreshGraduate: "Contributed to Node.js services and PostgreSQL schemas, writing tests and learning secure auth practices in a production environment.",
	},
}

// TemplateRewriter is a deterministic offline rewriter backed by a tone table
// keyed by the first word of the role title. Unknown roles use the frontend table.
type TemplateRewriter struct{}

// NewTemplateRewriter returns the offline rewriter.
func NewTemplateRewriter() *TemplateRewriter {
	return &TemplateRewriter{}
}

func (t *TemplateRewriter) Rewrite(ctx context.Context, req Request) (*Rewrite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	table, ok := toneTemplates[roleKey(req.Role)]
	if !ok {
		table = toneTemplates[fallbackRoleKey]
	}

	return &Rewrite{
		Tone:     req.Tone,
		Role:     req.Role,
		Text:     table[req.Tone],
		Original: strings.TrimSpace(req.Experience),
		Provider: ProviderTemplate,
	}, nil
}

func roleKey(role string) string {
	fields := strings.Fields(strings.ToLower(role))
	if len(fields) == 0 {
		return fallbackRoleKey
	}
	return fields[0]
}

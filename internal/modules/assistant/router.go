package assistant

import "strings"

// Decision selects the model profile for one question.
type Decision struct {
	Model           string
	UseLocationTool bool
}

// Router classifies a question into a model/tool profile. The keyword
// implementation below is deliberately simple; callers only see the
// interface so it can be swapped for a real intent classifier.
type Router interface {
	Route(question string) Decision
}

var locationKeywords = []string{
	"vet", "veterinarian", "clinic", "hospital",
	"store", "shop", "pharmacy",
	"daycare", "grooming", "groomer", "boarding", "kennel",
	"park", "near", "nearby", "closest", "around me", "in my area",
}

type keywordRouter struct {
	generalModel string
	searchModel  string
}

func NewKeywordRouter(generalModel, searchModel string) Router {
	return &keywordRouter{generalModel: generalModel, searchModel: searchModel}
}

func (r *keywordRouter) Route(question string) Decision {
	q := strings.ToLower(question)
	for _, kw := range locationKeywords {
		if strings.Contains(q, kw) {
			return Decision{Model: r.searchModel, UseLocationTool: true}
		}
	}
	return Decision{Model: r.generalModel, UseLocationTool: false}
}

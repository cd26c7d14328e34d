package fulfillment

import (
	"fmt"

	"github.com/sandevgo/cinebot/internal/core"
)

// Handler names, also used as metric labels and webhook route suffixes.
const (
	HandlerDiscover         = "discover"
	HandlerTrending         = "trending"
	HandlerTrendingProvider = "trending-provider"
	HandlerSynopsis         = "synopsis"
	HandlerSimilar          = "similar"
)

const (
	msgNoMovie          = "I couldn't find any movie matching your request."
	msgNoMovies         = "I couldn't find any movies matching your request."
	msgMissingTitle     = "I didn't catch the movie name. Could you please provide the title of the movie you're interested in?"
	msgMalformed        = "Sorry, I couldn't understand that request. Please try again."
	msgDiscoverFailed   = "Sorry, I couldn't retrieve the movies. Please try again later."
	msgSynopsisFailed   = "Sorry, I couldn't retrieve the synopsis. Please try again later."
	msgSimilarFailed    = "Sorry, I couldn't retrieve similar movies. Please try again later."
	msgGenericFailure   = "Sorry, something went wrong. Please try again later."
	fmtInvalidYear      = "The release year %q is not valid. Please provide a valid year."
	fmtUnknownProvider  = "Provider %q not recognized. Please try another provider."
	fmtUnknownGenre     = "Genre %q not recognized. Please try another genre."
	fmtProviderFailed   = "Error fetching movies for %q. Please try again later."
	fmtTitleNotFound    = "I couldn't find any movie titled %q. Please check the title and try again."
	fmtSimilarNotFound  = "I couldn't find any movie titled %q."
	fmtNoSimilar        = "I couldn't find any similar movies to %q."
	fmtUnrecognizedText = "%q is not something I recognize. Please try again."
)

// MessageFor is the user-facing text for a failed turn of handler.
// subject is the provider or title the turn was about, if any.
func MessageFor(handler string, err error, subject string) string {
	e, _ := core.AsError(err)
	kind := core.KindOf(err)

	switch kind {
	case core.KindInvalidYear:
		return fmt.Sprintf(fmtInvalidYear, e.Value)
	case core.KindUnrecognizedValue:
		switch e.Field {
		case core.ParamProvider:
			return fmt.Sprintf(fmtUnknownProvider, e.Value)
		case core.ParamGenre:
			return fmt.Sprintf(fmtUnknownGenre, e.Value)
		}
		return fmt.Sprintf(fmtUnrecognizedText, e.Value)
	case core.KindMissingRequiredParameter:
		return msgMissingTitle
	case core.KindMalformedRequest:
		return msgMalformed
	case core.KindNotFound:
		if handler == HandlerSimilar {
			return fmt.Sprintf(fmtSimilarNotFound, e.Value)
		}
		return fmt.Sprintf(fmtTitleNotFound, e.Value)
	}

	switch handler {
	case HandlerDiscover, HandlerTrending:
		return msgDiscoverFailed
	case HandlerTrendingProvider:
		if subject == "" {
			subject = "the selected provider"
		}
		return fmt.Sprintf(fmtProviderFailed, subject)
	case HandlerSynopsis:
		return msgSynopsisFailed
	case HandlerSimilar:
		return msgSimilarFailed
	}
	return msgGenericFailure
}

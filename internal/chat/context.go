package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vitrine-app/vitrine-server/internal/domain"
	"github.com/vitrine-app/vitrine-server/internal/llm"
)

const (
	firstInteractionNotice   = "Première interaction avec ce contact."
	catalogUnavailableNotice = "Catalogue momentanément indisponible."

	giftCardInfo = `Des cartes cadeaux sont disponibles à l'achat, de 10 à 500 euros.
Elles sont envoyées par email avec un code unique et restent valables un an.`
)

// historyTail is the number of trailing turns included in the chat prompt
const historyTail = 5

// Assembler builds the LLM-facing context from catalog data, promotions
// and conversation history
type Assembler struct {
	store        *Store
	catalog      domain.CatalogRepository
	promotions   domain.PromotionRepository
	businessName string
}

// NewAssembler creates a context assembler
func NewAssembler(store *Store, catalog domain.CatalogRepository, promotions domain.PromotionRepository, businessName string) *Assembler {
	return &Assembler{
		store:        store,
		catalog:      catalog,
		promotions:   promotions,
		businessName: businessName,
	}
}

// Persona returns the system persona for the assistant
func (a *Assembler) Persona() string {
	return fmt.Sprintf(`Tu es l'assistant commercial de %s.
Tu réponds de façon brève, chaleureuse et utile aux visiteurs de la boutique.
Tu ne parles que des produits, événements, cartes cadeaux et promotions de la boutique.
Quand tu recommandes un produit, inclus son lien sous la forme /p/<slug>.
Si tu ne connais pas la réponse, propose de mettre le visiteur en relation avec l'équipe.`, a.businessName)
}

// BuildCampaignContext builds the lightweight context used when replying
// inside a marketing campaign thread: a header naming the contact, the
// campaign context verbatim if supplied, and the rendered history (or a
// first-interaction marker). Never fails; the header alone is the floor.
func (a *Assembler) BuildCampaignContext(ctx context.Context, subjectID, displayName, campaignContext string) string {
	header := fmt.Sprintf("Conversation avec %s.", displayName)

	var b strings.Builder
	b.WriteString(header)

	if campaignContext != "" {
		b.WriteString("\n\nContexte de campagne :\n")
		b.WriteString(campaignContext)
	}

	turns, _ := a.store.History(ctx, subjectID)
	b.WriteString("\n\n")
	if len(turns) == 0 {
		b.WriteString(firstInteractionNotice)
	} else {
		b.WriteString("Historique de la conversation :\n")
		for _, turn := range turns {
			b.WriteString(fmt.Sprintf("%s: %s\n", turn.Role.Label(), turn.Content))
		}
	}

	return b.String()
}

// BuildChatMessages assembles the full chat prompt: persona, a context
// message (catalog, gift cards, promotions, optional campaign section),
// the trailing history turns and the new inbound message, in that order.
func (a *Assembler) BuildChatMessages(ctx context.Context, subjectID, displayName, campaignContext, incoming string) []llm.Message {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: a.Persona()},
		{Role: llm.RoleSystem, Content: a.buildContextSection(ctx, displayName, campaignContext)},
	}

	turns, _ := a.store.History(ctx, subjectID)
	if len(turns) > historyTail {
		turns = turns[len(turns)-historyTail:]
	}
	for _, turn := range turns {
		role := llm.RoleUser
		if turn.Role == domain.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: incoming})
	return messages
}

// buildContextSection renders the commerce sections. Each external fetch
// degrades independently: a failed catalog read yields a placeholder, a
// failed promotions read yields no promotions section.
func (a *Assembler) buildContextSection(ctx context.Context, displayName, campaignContext string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tu discutes avec %s.\n", displayName))

	b.WriteString("\nCatalogue :\n")
	items, err := a.catalog.ListPublished(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch catalog for chat context")
		b.WriteString(catalogUnavailableNotice + "\n")
	} else if len(items) == 0 {
		b.WriteString("Aucun produit publié pour le moment.\n")
	} else {
		for _, item := range items {
			b.WriteString(fmt.Sprintf("- %s (%s) — %.2f %s — disponibilité: %d — /p/%s\n",
				item.Title, item.Category, item.Price, item.Currency, item.Availability, item.Slug))
		}
	}

	b.WriteString("\nCartes cadeaux :\n")
	b.WriteString(giftCardInfo + "\n")

	promotions, err := a.promotions.ListActive(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch promotions for chat context")
	} else if len(promotions) > 0 {
		b.WriteString("\nPromotions en cours :\n")
		for _, promo := range promotions {
			b.WriteString(fmt.Sprintf("- %s (code %s) : %s, valable jusqu'au %s\n",
				promo.Name, promo.Code, formatDiscount(promo), promo.EndDate.Format("2006-01-02")))
		}
	}

	if campaignContext != "" {
		b.WriteString("\nContexte de campagne :\n")
		b.WriteString(campaignContext + "\n")
	}

	return b.String()
}

func formatDiscount(p domain.Promotion) string {
	if p.DiscountType == domain.DiscountPercentage {
		return fmt.Sprintf("-%.0f%%", p.DiscountValue)
	}
	return fmt.Sprintf("-%.2f €", p.DiscountValue)
}

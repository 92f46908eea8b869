package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ReedRawlings/moodlet/internal/app/badges"
	"github.com/ReedRawlings/moodlet/internal/app/shop"
	"github.com/ReedRawlings/moodlet/internal/daemon"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

func init() {
	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopBuyCmd)
	rootCmd.AddCommand(shopCmd)
}

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse and buy accessories and backgrounds",
}

var shopListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List everything the shop sells",
	RunE:    runShopList,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <item-id>",
	Short: "Spend points on an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopBuy,
}

func runShopList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.DB.LoadProfile()
	if err != nil {
		return err
	}
	accessories, err := d.DB.ListAccessories()
	if err != nil {
		return err
	}
	backgrounds, err := d.DB.ListBackgrounds()
	if err != nil {
		return err
	}

	fmt.Printf("Balance: %d points\n\n", p.TotalPoints)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tPRICE\tSTATUS")
	for _, a := range accessories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", a.ID, a.Name, a.Category, a.Price, itemStatus(p, a))
	}
	for _, b := range backgrounds {
		fmt.Fprintf(w, "%s\t%s\tbackground\t%d\t%s\n", b.ID, b.Name, b.Price, itemStatus(p, b))
	}
	return w.Flush()
}

func itemStatus(p *domain.Profile, item domain.ShopItem) string {
	switch {
	case item.ItemKind() == domain.KindAccessory && p.HasUnlockedAccessory(item.ItemID()),
		item.ItemKind() == domain.KindBackground && p.HasUnlockedBackground(item.ItemID()):
		return "owned"
	case item.PremiumOnly() && !p.IsPremium:
		return "premium"
	case item.StreakMilestone() > 0 && p.LongestStreak < item.StreakMilestone():
		return fmt.Sprintf("needs %d-day streak", item.StreakMilestone())
	case p.TotalPoints < item.ItemPrice():
		return "can't afford"
	default:
		return "available"
	}
}

func runShopBuy(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	item, err := lookupItem(d, args[0])
	if err != nil {
		return err
	}

	p, err := d.DB.LoadProfile()
	if err != nil {
		return err
	}

	if !shop.Purchase(p, item) {
		return fmt.Errorf("cannot buy %s: %s", item.ItemID(), itemStatus(p, item))
	}
	if err := d.DB.SaveProfile(p); err != nil {
		return err
	}

	fmt.Printf("Bought %s for %d points. Balance: %d\n", item.ItemID(), item.ItemPrice(), p.TotalPoints)
	return printNewBadges(d, p)
}

// printNewBadges re-runs badge evaluation after purchases and equips and
// announces whatever landed.
func printNewBadges(d *daemon.Daemon, p *domain.Profile) error {
	ev := badges.NewEvaluator(domain.SystemClock{})
	earned, err := ev.Reevaluate(d.DB, d.DB, p)
	if err != nil {
		return err
	}
	for _, b := range earned {
		fmt.Printf("  Badge unlocked: %s\n", b.ID)
	}
	return nil
}

// lookupItem tries the accessory catalog first, then backgrounds.
func lookupItem(d *daemon.Daemon, id string) (domain.ShopItem, error) {
	if a, err := d.DB.GetAccessory(id); err == nil {
		return *a, nil
	}
	b, err := d.DB.GetBackground(id)
	if err != nil {
		return nil, err
	}
	return *b, nil
}

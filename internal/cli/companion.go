package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ReedRawlings/moodlet/internal/app/shop"
	"github.com/ReedRawlings/moodlet/internal/daemon"
	"github.com/ReedRawlings/moodlet/internal/domain"
)

func init() {
	companionCreateCmd.Flags().StringVar(&companionName, "name", "", "Companion name (required)")
	companionCreateCmd.Flags().StringVar(&companionSpecies, "species", "cat", "Species: cat, bear, bunny, frog, fox, penguin")
	companionCreateCmd.MarkFlagRequired("name")

	companionCmd.AddCommand(companionCreateCmd)
	companionCmd.AddCommand(companionShowCmd)
	companionCmd.AddCommand(equipCmd)
	companionCmd.AddCommand(unequipCmd)
	companionCmd.AddCommand(backgroundCmd)
	rootCmd.AddCommand(companionCmd)
}

var (
	companionName    string
	companionSpecies string
)

var companionCmd = &cobra.Command{
	Use:   "companion",
	Short: "Create and dress up your companion",
}

var companionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Adopt a companion",
	RunE:  runCompanionCreate,
}

var companionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your companion and what it is wearing",
	RunE:  runCompanionShow,
}

var equipCmd = &cobra.Command{
	Use:   "equip <item-id>",
	Short: "Put an owned accessory on the companion",
	Args:  cobra.ExactArgs(1),
	RunE:  runEquip,
}

var unequipCmd = &cobra.Command{
	Use:   "unequip <category>",
	Short: "Take off whatever is in a category (eyes, glasses, hat, top, held_item)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnequip,
}

var backgroundCmd = &cobra.Command{
	Use:   "background <item-id|none>",
	Short: "Set or clear the companion's background",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackground,
}

func runCompanionCreate(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if _, err := d.DB.LoadCompanion(); err == nil {
		return domain.ErrCompanionExists
	}

	species := domain.Species(companionSpecies)
	valid := false
	for _, sp := range domain.AllSpecies() {
		if sp == species {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("unknown species %q", companionSpecies)
	}

	p, err := d.DB.LoadProfile()
	if err != nil {
		return err
	}
	if species.IsPremium() && !p.IsPremium {
		return domain.ErrSpeciesLocked
	}

	c := domain.NewCompanion(uuid.NewString(), companionName, species, time.Now())
	if err := d.DB.SaveCompanion(c); err != nil {
		return err
	}
	fmt.Printf("Say hello to %s the %s!\n", c.Name, c.Species)
	return nil
}

func runCompanionShow(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	c, err := d.DB.LoadCompanion()
	if err != nil {
		return err
	}

	fmt.Printf("%s the %s (since %s)\n", c.Name, c.Species, c.CreatedAt.Format("2006-01-02"))
	if len(c.EquippedAccessories) == 0 && c.EquippedBackgroundID == "" {
		fmt.Println("Wearing nothing yet. Visit 'moodlet shop list'.")
		return nil
	}
	for _, cat := range domain.AllCategories() {
		if id, ok := c.EquippedAccessories[cat]; ok {
			fmt.Printf("  %s: %s\n", cat, id)
		}
	}
	if c.EquippedBackgroundID != "" {
		fmt.Printf("  background: %s\n", c.EquippedBackgroundID)
	}
	return nil
}

func runEquip(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	a, err := d.DB.GetAccessory(args[0])
	if err != nil {
		return err
	}

	p, err := d.DB.LoadProfile()
	if err != nil {
		return err
	}
	if !p.HasUnlockedAccessory(a.ID) {
		return domain.ErrItemNotOwned
	}

	c, err := d.DB.LoadCompanion()
	if err != nil {
		return err
	}

	shop.Equip(c, *a)
	if err := d.DB.SaveCompanion(c); err != nil {
		return err
	}
	fmt.Printf("%s is now wearing %s.\n", c.Name, a.Name)
	return printNewBadges(d, p)
}

func runUnequip(cmd *cobra.Command, args []string) error {
	cat := domain.AccessoryCategory(args[0])
	if !cat.Valid() {
		return domain.ErrUnknownCategory
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	c, err := d.DB.LoadCompanion()
	if err != nil {
		return err
	}

	shop.Unequip(c, cat)
	if err := d.DB.SaveCompanion(c); err != nil {
		return err
	}
	fmt.Printf("Removed %s.\n", cat)
	return nil
}

func runBackground(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	c, err := d.DB.LoadCompanion()
	if err != nil {
		return err
	}

	if args[0] == "none" {
		shop.UnequipBackground(c)
		if err := d.DB.SaveCompanion(c); err != nil {
			return err
		}
		fmt.Println("Background cleared.")
		return nil
	}

	b, err := d.DB.GetBackground(args[0])
	if err != nil {
		return err
	}
	p, err := d.DB.LoadProfile()
	if err != nil {
		return err
	}
	if !p.HasUnlockedBackground(b.ID) {
		return domain.ErrItemNotOwned
	}

	shop.EquipBackground(c, *b)
	if err := d.DB.SaveCompanion(c); err != nil {
		return err
	}
	fmt.Printf("Background set to %s.\n", b.Name)
	return printNewBadges(d, p)
}

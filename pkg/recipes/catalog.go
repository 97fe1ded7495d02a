package recipes

// Builtins returns the static recipe table. Order does not matter:
// the registry sorts names for listing and completion.
func Builtins() []*Recipe {
	return []*Recipe{
		addSSHRecipe,
		appsRecipe,
		backlightFixRecipe,
		batteryRecipe,
		distroRecipe,
		dotfilesRecipe,
		flameshotRecipe,
		materialAwesomeRecipe,
		monitorRecipe,
		odooDepsRecipe,
		odooVenvRecipe,
		passwordRecipe,
		pyflameRecipe,
		serialRecipe,
		swapfileRecipe,
		tmcCliRecipe,
		updateRecipe,
	}
}

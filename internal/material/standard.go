package material

// Standard declares the elements and compounds used by the cryostat
// prototypes. Element names are lower case; compounds are CamelCase.
func Standard(reg *Registry) error {
	elements := []*Element{
		{Name: "hydrogen", Symbol: "H", Z: 1, MolarMass: 1.0079},
		{Name: "carbon", Symbol: "C", Z: 6, MolarMass: 12.0107},
		{Name: "nitrogen", Symbol: "N", Z: 7, MolarMass: 14.0067},
		{Name: "oxygen", Symbol: "O", Z: 8, MolarMass: 15.999},
		{Name: "sodium", Symbol: "Na", Z: 11, MolarMass: 22.99},
		{Name: "aluminum", Symbol: "Al", Z: 13, MolarMass: 26.9815},
		{Name: "silicon", Symbol: "Si", Z: 14, MolarMass: 28.0855},
		{Name: "argon", Symbol: "Ar", Z: 18, MolarMass: 39.9480},
		{Name: "calcium", Symbol: "Ca", Z: 20, MolarMass: 40.078},
		{Name: "chromium", Symbol: "Cr", Z: 24, MolarMass: 51.9961},
		{Name: "iron", Symbol: "Fe", Z: 26, MolarMass: 55.8450},
		{Name: "nickel", Symbol: "Ni", Z: 28, MolarMass: 58.6934},
		{Name: "copper", Symbol: "Cu", Z: 29, MolarMass: 63.546},
	}

	compounds := []Material{
		&Mixture{Name: "Air", Density: 0.001205, Components: []Component{
			{"nitrogen", 0.781154}, {"oxygen", 0.209476}, {"argon", 0.00934},
		}},
		&Mixture{Name: "Concrete", Density: 2.3, Components: []Component{
			{"oxygen", 0.530}, {"silicon", 0.335}, {"calcium", 0.060},
			{"sodium", 0.015}, {"iron", 0.020}, {"aluminum", 0.040},
		}},
		// Polyurethane insulation, 32 kg/m^3.
		&Molecule{Name: "Foam", Density: 0.032, Atoms: []Atom{
			{"carbon", 3}, {"hydrogen", 8}, {"nitrogen", 2}, {"oxygen", 1},
		}},
		&Mixture{Name: "Stainless", Density: 7.93, Components: []Component{
			{"carbon", 0.0010}, {"chromium", 0.1792}, {"iron", 0.7298}, {"nickel", 0.0900},
		}},
		&Mixture{Name: "LiquidArgon", Density: 1.40, Components: []Component{
			{"argon", 1.0},
		}},
		// G10 density with the copper of the plating.
		&Mixture{Name: "FieldCage", Density: 1.850, Components: []Component{
			{"copper", 1.0},
		}},
		&Mixture{Name: "G10", Density: 1.7, Components: []Component{
			{"silicon", 0.2805}, {"oxygen", 0.3954}, {"carbon", 0.2749}, {"hydrogen", 0.0492},
		}},
	}

	for _, e := range elements {
		if _, err := reg.Define(e); err != nil {
			return err
		}
	}
	for _, m := range compounds {
		if _, err := reg.Define(m); err != nil {
			return err
		}
	}
	return nil
}

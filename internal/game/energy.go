package game

// allocateEnergy assigns attached energy to the slots of an attack cost.
// Typed slots are filled first, each from the oldest unused energy of that
// type; colorless slots then take the oldest leftovers. Because every Energy
// card provides exactly one type, this greedy order is a maximum matching:
// no other assignment covers more slots.
//
// Postcondition: assignment[i] is the index into energy paying cost[i], or -1.
// covered counts the non-negative entries.
func allocateEnergy(energy []*Instance, cost []ElementType) (assignment []int, covered int) {
	used := make([]bool, len(energy))
	assignment = make([]int, len(cost))
	for i := range assignment {
		assignment[i] = -1
	}

	for i, need := range cost {
		if need == Colorless {
			continue
		}
		for j, e := range energy {
			if !used[j] && e.Template.Type == need {
				used[j] = true
				assignment[i] = j
				covered++
				break
			}
		}
	}
	for i, need := range cost {
		if need != Colorless {
			continue
		}
		for j := range energy {
			if !used[j] {
				used[j] = true
				assignment[i] = j
				covered++
				break
			}
		}
	}
	return assignment, covered
}

// MissingEnergy returns how many cost slots the attached energy cannot pay.
func MissingEnergy(energy []*Instance, cost []ElementType) int {
	_, covered := allocateEnergy(energy, cost)
	return len(cost) - covered
}

package memory

import (
	"time"

	"petclinic/internal/domain/catalog"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewSeededStore carga los mismos datos que la migración de seed SQL.
func NewSeededStore() *Store {
	s := NewStore()

	for _, v := range []vetRow{
		{1, "James", "Carter"},
		{2, "Helen", "Leary"},
		{3, "Linda", "Douglas"},
		{4, "Rafael", "Ortega"},
		{5, "Henry", "Stevens"},
		{6, "Sharon", "Jenkins"},
	} {
		s.vets[v.id] = v
		s.bump("vets", v.id)
	}

	for id, name := range map[int64]string{1: "radiology", 2: "surgery", 3: "dentistry"} {
		s.lookups[catalog.KindSpecialty][id] = name
		s.bump(string(catalog.KindSpecialty), id)
	}
	for _, vs := range [][2]int64{{2, 1}, {3, 2}, {3, 3}, {4, 2}, {5, 1}} {
		s.linkSpecialty(vs[0], vs[1])
	}

	for id, name := range map[int64]string{1: "cat", 2: "dog", 3: "lizard", 4: "snake", 5: "bird", 6: "hamster"} {
		s.lookups[catalog.KindPetType][id] = name
		s.bump(string(catalog.KindPetType), id)
	}

	for _, o := range []ownerRow{
		{1, "George", "Franklin", "110 W. Liberty St.", "Madison", "6085551023"},
		{2, "Betty", "Davis", "638 Cardinal Ave.", "Sun Prairie", "6085551749"},
		{3, "Eduardo", "Rodriquez", "2693 Commerce St.", "McFarland", "6085558763"},
		{4, "Harold", "Davis", "563 Friendly St.", "Windsor", "6085553198"},
		{5, "Peter", "McTavish", "2387 S. Fair Way", "Madison", "6085552765"},
		{6, "Jean", "Coleman", "105 N. Lake St.", "Monona", "6085552654"},
		{7, "Jeff", "Black", "1450 Oak Blvd.", "Monona", "6085555387"},
		{8, "Maria", "Escobito", "345 Maple St.", "Madison", "6085557683"},
		{9, "David", "Schroeder", "2749 Blackhawk Trail", "Madison", "6085559435"},
		{10, "Carlos", "Estaban", "2335 Independence La.", "Waunakee", "6085555487"},
	} {
		s.owners[o.id] = o
		s.bump("owners", o.id)
	}

	for _, p := range []petRow{
		{1, "Leo", day(2010, 9, 7), 1, 1},
		{2, "Basil", day(2012, 8, 6), 6, 2},
		{3, "Rosy", day(2011, 4, 17), 2, 3},
		{4, "Jewel", day(2010, 3, 7), 2, 3},
		{5, "Iggy", day(2010, 11, 30), 3, 4},
		{6, "George", day(2010, 1, 20), 4, 5},
		{7, "Samantha", day(2012, 9, 4), 1, 6},
		{8, "Max", day(2012, 9, 4), 1, 6},
		{9, "Lucky", day(2011, 8, 6), 5, 7},
		{10, "Mulligan", day(2007, 2, 24), 2, 8},
		{11, "Freddy", day(2010, 3, 9), 5, 9},
		{12, "Lucky", day(2010, 6, 24), 2, 10},
		{13, "Sly", day(2012, 6, 8), 1, 10},
	} {
		s.pets[p.id] = p
		s.bump("pets", p.id)
	}

	for _, v := range []visitRow{
		{1, 7, day(2013, 1, 1), "rabies shot"},
		{2, 8, day(2013, 1, 2), "rabies shot"},
		{3, 8, day(2013, 1, 3), "neutered"},
		{4, 7, day(2013, 1, 4), "spayed"},
	} {
		s.visits[v.id] = v
		s.bump("visits", v.id)
	}

	return s
}

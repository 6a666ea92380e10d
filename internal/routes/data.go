package routes

import "github.com/rshade/ecoroute/internal/geo"

// DefaultSearchRadiusKM bounds Nearest lookups when no radius is given.
const DefaultSearchRadiusKM = 50.0

// DefaultLocations returns the seeded Brazilian cities.
func DefaultLocations() []Location {
	return []Location{
		{ID: "sao_paulo", Name: "São Paulo", Coordinate: geo.Coordinate{Lat: -23.5505, Lng: -46.6333}},
		{ID: "rio_janeiro", Name: "Rio de Janeiro", Coordinate: geo.Coordinate{Lat: -22.9068, Lng: -43.1729}},
		{ID: "belo_horizonte", Name: "Belo Horizonte", Coordinate: geo.Coordinate{Lat: -19.9167, Lng: -43.9345}},
		{ID: "brasilia", Name: "Brasília", Coordinate: geo.Coordinate{Lat: -15.7801, Lng: -47.9292}},
		{ID: "curitiba", Name: "Curitiba", Coordinate: geo.Coordinate{Lat: -25.4284, Lng: -49.2733}},
		{ID: "porto_alegre", Name: "Porto Alegre", Coordinate: geo.Coordinate{Lat: -30.0346, Lng: -51.2177}},
		{ID: "salvador", Name: "Salvador", Coordinate: geo.Coordinate{Lat: -12.9714, Lng: -38.5014}},
		{ID: "fortaleza", Name: "Fortaleza", Coordinate: geo.Coordinate{Lat: -3.7172, Lng: -38.5433}},
		{ID: "recife", Name: "Recife", Coordinate: geo.Coordinate{Lat: -8.0476, Lng: -34.8770}},
		{ID: "manaus", Name: "Manaus", Coordinate: geo.Coordinate{Lat: -3.1190, Lng: -60.0217}},
		{ID: "belem", Name: "Belém", Coordinate: geo.Coordinate{Lat: -1.4558, Lng: -48.4902}},
		{ID: "goiania", Name: "Goiânia", Coordinate: geo.Coordinate{Lat: -16.6869, Lng: -49.2648}},
		{ID: "campinas", Name: "Campinas", Coordinate: geo.Coordinate{Lat: -22.9099, Lng: -47.0626}},
		{ID: "santos", Name: "Santos", Coordinate: geo.Coordinate{Lat: -23.9608, Lng: -46.3333}},
		{ID: "florianopolis", Name: "Florianópolis", Coordinate: geo.Coordinate{Lat: -27.5954, Lng: -48.5480}},
	}
}

// DefaultRoutes returns the seeded road distances between DefaultLocations.
// Every unordered pair of seeded cities has exactly one entry.
func DefaultRoutes() []RouteEntry {
	return []RouteEntry{
		// São Paulo
		{Origin: "sao_paulo", Destination: "rio_janeiro", DistanceKm: 430},
		{Origin: "sao_paulo", Destination: "belo_horizonte", DistanceKm: 586},
		{Origin: "sao_paulo", Destination: "brasilia", DistanceKm: 1015},
		{Origin: "sao_paulo", Destination: "curitiba", DistanceKm: 408},
		{Origin: "sao_paulo", Destination: "porto_alegre", DistanceKm: 1109},
		{Origin: "sao_paulo", Destination: "salvador", DistanceKm: 1962},
		{Origin: "sao_paulo", Destination: "fortaleza", DistanceKm: 3127},
		{Origin: "sao_paulo", Destination: "recife", DistanceKm: 2660},
		{Origin: "sao_paulo", Destination: "manaus", DistanceKm: 3934},
		{Origin: "sao_paulo", Destination: "belem", DistanceKm: 3250},
		{Origin: "sao_paulo", Destination: "goiania", DistanceKm: 926},
		{Origin: "sao_paulo", Destination: "campinas", DistanceKm: 96},
		{Origin: "sao_paulo", Destination: "santos", DistanceKm: 72},
		{Origin: "sao_paulo", Destination: "florianopolis", DistanceKm: 705},

		// Rio de Janeiro
		{Origin: "rio_janeiro", Destination: "belo_horizonte", DistanceKm: 434},
		{Origin: "rio_janeiro", Destination: "brasilia", DistanceKm: 1148},
		{Origin: "rio_janeiro", Destination: "curitiba", DistanceKm: 852},
		{Origin: "rio_janeiro", Destination: "porto_alegre", DistanceKm: 1553},
		{Origin: "rio_janeiro", Destination: "salvador", DistanceKm: 1649},
		{Origin: "rio_janeiro", Destination: "fortaleza", DistanceKm: 2808},
		{Origin: "rio_janeiro", Destination: "recife", DistanceKm: 2338},
		{Origin: "rio_janeiro", Destination: "manaus", DistanceKm: 4378},
		{Origin: "rio_janeiro", Destination: "belem", DistanceKm: 3250},
		{Origin: "rio_janeiro", Destination: "goiania", DistanceKm: 1224},
		{Origin: "rio_janeiro", Destination: "campinas", DistanceKm: 521},
		{Origin: "rio_janeiro", Destination: "santos", DistanceKm: 490},
		{Origin: "rio_janeiro", Destination: "florianopolis", DistanceKm: 1145},

		// Belo Horizonte
		{Origin: "belo_horizonte", Destination: "brasilia", DistanceKm: 716},
		{Origin: "belo_horizonte", Destination: "curitiba", DistanceKm: 1004},
		{Origin: "belo_horizonte", Destination: "porto_alegre", DistanceKm: 1712},
		{Origin: "belo_horizonte", Destination: "salvador", DistanceKm: 1372},
		{Origin: "belo_horizonte", Destination: "fortaleza", DistanceKm: 2527},
		{Origin: "belo_horizonte", Destination: "recife", DistanceKm: 2075},
		{Origin: "belo_horizonte", Destination: "manaus", DistanceKm: 3950},
		{Origin: "belo_horizonte", Destination: "belem", DistanceKm: 2824},
		{Origin: "belo_horizonte", Destination: "goiania", DistanceKm: 906},
		{Origin: "belo_horizonte", Destination: "campinas", DistanceKm: 595},
		{Origin: "belo_horizonte", Destination: "santos", DistanceKm: 860},
		{Origin: "belo_horizonte", Destination: "florianopolis", DistanceKm: 1301},

		// Brasília
		{Origin: "brasilia", Destination: "curitiba", DistanceKm: 1366},
		{Origin: "brasilia", Destination: "porto_alegre", DistanceKm: 2027},
		{Origin: "brasilia", Destination: "salvador", DistanceKm: 1446},
		{Origin: "brasilia", Destination: "fortaleza", DistanceKm: 2200},
		{Origin: "brasilia", Destination: "recife", DistanceKm: 2200},
		{Origin: "brasilia", Destination: "manaus", DistanceKm: 3490},
		{Origin: "brasilia", Destination: "belem", DistanceKm: 2120},
		{Origin: "brasilia", Destination: "goiania", DistanceKm: 209},
		{Origin: "brasilia", Destination: "campinas", DistanceKm: 878},
		{Origin: "brasilia", Destination: "santos", DistanceKm: 1290},
		{Origin: "brasilia", Destination: "florianopolis", DistanceKm: 1673},

		// Curitiba
		{Origin: "curitiba", Destination: "porto_alegre", DistanceKm: 711},
		{Origin: "curitiba", Destination: "salvador", DistanceKm: 2528},
		{Origin: "curitiba", Destination: "fortaleza", DistanceKm: 3770},
		{Origin: "curitiba", Destination: "recife", DistanceKm: 3292},
		{Origin: "curitiba", Destination: "manaus", DistanceKm: 4370},
		{Origin: "curitiba", Destination: "belem", DistanceKm: 3682},
		{Origin: "curitiba", Destination: "goiania", DistanceKm: 1254},
		{Origin: "curitiba", Destination: "campinas", DistanceKm: 408},
		{Origin: "curitiba", Destination: "santos", DistanceKm: 340},
		{Origin: "curitiba", Destination: "florianopolis", DistanceKm: 300},

		// Porto Alegre
		{Origin: "porto_alegre", Destination: "salvador", DistanceKm: 3236},
		{Origin: "porto_alegre", Destination: "fortaleza", DistanceKm: 4374},
		{Origin: "porto_alegre", Destination: "recife", DistanceKm: 3896},
		{Origin: "porto_alegre", Destination: "manaus", DistanceKm: 4730},
		{Origin: "porto_alegre", Destination: "belem", DistanceKm: 4193},
		{Origin: "porto_alegre", Destination: "goiania", DistanceKm: 1965},
		{Origin: "porto_alegre", Destination: "campinas", DistanceKm: 1044},
		{Origin: "porto_alegre", Destination: "santos", DistanceKm: 1150},
		{Origin: "porto_alegre", Destination: "florianopolis", DistanceKm: 476},

		// Salvador
		{Origin: "salvador", Destination: "fortaleza", DistanceKm: 1389},
		{Origin: "salvador", Destination: "recife", DistanceKm: 800},
		{Origin: "salvador", Destination: "manaus", DistanceKm: 3673},
		{Origin: "salvador", Destination: "belem", DistanceKm: 2040},
		{Origin: "salvador", Destination: "goiania", DistanceKm: 1571},
		{Origin: "salvador", Destination: "campinas", DistanceKm: 2110},
		{Origin: "salvador", Destination: "santos", DistanceKm: 2180},
		{Origin: "salvador", Destination: "florianopolis", DistanceKm: 2826},

		// Fortaleza
		{Origin: "fortaleza", Destination: "recife", DistanceKm: 800},
		{Origin: "fortaleza", Destination: "manaus", DistanceKm: 4023},
		{Origin: "fortaleza", Destination: "belem", DistanceKm: 1609},
		{Origin: "fortaleza", Destination: "goiania", DistanceKm: 2315},
		{Origin: "fortaleza", Destination: "campinas", DistanceKm: 3088},
		{Origin: "fortaleza", Destination: "santos", DistanceKm: 3267},
		{Origin: "fortaleza", Destination: "florianopolis", DistanceKm: 4068},

		// Recife
		{Origin: "recife", Destination: "manaus", DistanceKm: 4447},
		{Origin: "recife", Destination: "belem", DistanceKm: 2133},
		{Origin: "recife", Destination: "goiania", DistanceKm: 2315},
		{Origin: "recife", Destination: "campinas", DistanceKm: 2620},
		{Origin: "recife", Destination: "santos", DistanceKm: 2790},
		{Origin: "recife", Destination: "florianopolis", DistanceKm: 3590},

		// Manaus
		{Origin: "manaus", Destination: "belem", DistanceKm: 1294},
		{Origin: "manaus", Destination: "goiania", DistanceKm: 3286},
		{Origin: "manaus", Destination: "campinas", DistanceKm: 3880},
		{Origin: "manaus", Destination: "santos", DistanceKm: 4020},
		{Origin: "manaus", Destination: "florianopolis", DistanceKm: 4668},

		// Belém
		{Origin: "belem", Destination: "goiania", DistanceKm: 2015},
		{Origin: "belem", Destination: "campinas", DistanceKm: 3042},
		{Origin: "belem", Destination: "santos", DistanceKm: 3370},
		{Origin: "belem", Destination: "florianopolis", DistanceKm: 3948},

		// Goiânia
		{Origin: "goiania", Destination: "campinas", DistanceKm: 810},
		{Origin: "goiania", Destination: "santos", DistanceKm: 1090},
		{Origin: "goiania", Destination: "florianopolis", DistanceKm: 1561},

		// Campinas
		{Origin: "campinas", Destination: "santos", DistanceKm: 136},
		{Origin: "campinas", Destination: "florianopolis", DistanceKm: 609},

		// Santos
		{Origin: "santos", Destination: "florianopolis", DistanceKm: 633},
	}
}

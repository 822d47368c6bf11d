package utils

// Paginate describes the page of a list returned by an endpoint
type Paginate struct {
	StartPage    int `json:"start_page"`
	ItemsOnPage  int `json:"items_on_page"`
	ItemsPerPage int `json:"items_per_page"`
	TotalResult  int `json:"total_result"`
}

// PaginateEndPoint computes the page startPage of count items in a list of sizeResp
// items. indexS is -1 when the page is past the end of the list.
func PaginateEndPoint(sizeResp, count, startPage int) (paginate Paginate, indexS, indexE int) {
	indexS = -1
	indexE = sizeResp

	if count >= 0 && startPage >= 0 {
		firstItem := startPage * count
		lastItem := firstItem + count
		if firstItem < sizeResp {
			indexS = firstItem
			if lastItem < sizeResp {
				indexE = lastItem
			}
		}
	}

	itemsOnPage := 0
	if indexS >= 0 {
		itemsOnPage = indexE - indexS
	}
	return NewPaginate(startPage, itemsOnPage, count, sizeResp), indexS, indexE
}

func NewPaginate(startPage, itemsOnPage, itemsPerPage, totalResult int) Paginate {
	return Paginate{
		StartPage:    startPage,
		ItemsOnPage:  itemsOnPage,
		ItemsPerPage: itemsPerPage,
		TotalResult:  totalResult,
	}
}
